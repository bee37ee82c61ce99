package theme

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var colorToken = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b|rgba?\([^)]*\)`)

// ParseColor turns a slot value into a solid color. Translucent colors are
// blended over backdrop, gradients collapse to the midpoint of their first and
// last stops, and shadows use their color component.
func ParseColor(value string, backdrop colorful.Color) (colorful.Color, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return colorful.Color{}, false
	}

	tokens := colorToken.FindAllString(value, -1)
	if len(tokens) == 0 {
		return colorful.Color{}, false
	}

	first, ok := parseToken(tokens[0], backdrop)
	if !ok {
		return colorful.Color{}, false
	}
	if strings.HasPrefix(value, "linear-gradient") && len(tokens) > 1 {
		last, ok := parseToken(tokens[len(tokens)-1], backdrop)
		if ok {
			return first.BlendLab(last, 0.5).Clamped(), true
		}
	}
	return first, true
}

// HexColor is ParseColor rendered as "#rrggbb".
func HexColor(value string, backdrop colorful.Color) (string, bool) {
	c, ok := ParseColor(value, backdrop)
	if !ok {
		return "", false
	}
	return c.Hex(), true
}

func parseToken(tok string, backdrop colorful.Color) (colorful.Color, bool) {
	if strings.HasPrefix(tok, "#") {
		return parseHex(tok, backdrop)
	}
	return parseRGBA(tok, backdrop)
}

func parseHex(tok string, backdrop colorful.Color) (colorful.Color, bool) {
	hex := strings.TrimPrefix(tok, "#")
	alpha := 1.0
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return colorful.Color{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return blendAlpha(c, alpha, backdrop), true
}

func parseRGBA(tok string, backdrop colorful.Color) (colorful.Color, bool) {
	open := strings.IndexByte(tok, '(')
	if open < 0 || !strings.HasSuffix(tok, ")") {
		return colorful.Color{}, false
	}
	parts := strings.Split(tok[open+1:len(tok)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, false
	}

	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return colorful.Color{}, false
		}
		rgb[i] = v / 255
	}
	alpha := 1.0
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return colorful.Color{}, false
		}
		alpha = v
	}
	c := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Clamped()
	return blendAlpha(c, alpha, backdrop), true
}

func blendAlpha(c colorful.Color, alpha float64, backdrop colorful.Color) colorful.Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return backdrop.BlendRgb(c, alpha).Clamped()
}
