package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Fallback stylesheet. These apply to any slot the active theme leaves empty.
// Format: AdaptiveColor{Light: "color for light bg", Dark: "color for dark bg"}
var (
	Primary      = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	PrimaryBold  = lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#7C3AED"}
	PrimaryMuted = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#6D28D9"}

	Text        = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F3F4F6"}
	TextMuted   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	TextDim     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	TextInverse = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#111827"}

	BgBase      = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}
	BgSubtle    = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	BgMuted     = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	BgHighlight = lipgloss.AdaptiveColor{Light: "#DDD6FE", Dark: "#4C1D95"}

	Success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	Warning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	Error   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	Info    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

	Border      = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
)

// DarkModeClass forces the dark half of every fallback color.
const DarkModeClass = "dark"

// Styles provides all application styles for one render pass.
type Styles struct {
	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderInfo  lipgloss.Style
	HeaderBadge lipgloss.Style

	// Table
	Table         lipgloss.Style
	TableHeader   lipgloss.Style
	Row           lipgloss.Style
	RowStripe     lipgloss.Style
	RowSelected   lipgloss.Style
	Cursor        lipgloss.Style
	ScrollInfo    lipgloss.Style
	ScrollCurrent lipgloss.Style

	// Details card
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	StatusValue   lipgloss.Style
	StatusDivider lipgloss.Style

	// Status indicators
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	// Dialogs and inputs
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputLabel   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// Misc
	Spinner lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Accent  lipgloss.Style

	// Colors exposed for components that build their own styles.
	Backdrop     colorful.Color
	AccentColor  lipgloss.TerminalColor
	BorderColor  lipgloss.TerminalColor
	GlowColor    lipgloss.TerminalColor
	HasGlow      bool
	SuccessColor lipgloss.TerminalColor
	ErrorColor   lipgloss.TerminalColor
	WarningColor lipgloss.TerminalColor
	InfoColor    lipgloss.TerminalColor
}

// DefaultStyles returns styles built purely from the fallback stylesheet.
func DefaultStyles() Styles {
	return StylesFor(nil)
}

// StylesFor derives styles from the slots currently set on s.
// A nil surface yields the fallback stylesheet.
func StylesFor(s *Surface) Styles {
	p := palette{surface: s}
	if s != nil && s.HasClass(DarkModeClass) {
		p.forceDark = true
	}
	p.backdrop = p.backdropColor()

	accent := p.color(KeyAccent, Primary)
	text := p.color(KeyTextColor, Text)
	textMuted := p.color(KeyTextMuted, TextMuted)
	textSecondary := p.color(KeyTextSecondary, TextDim)
	border := p.color(KeyBorderColor, Border)
	card := p.color(KeyCardBackground, BgSubtle)
	glow, hasGlow := p.optional(KeyGlow)
	focusBorder := p.color(KeyInputFocusBorder, BorderFocus)
	if hasGlow {
		focusBorder = glow
	}

	success := p.color(KeySuccessColor, Success)
	warning := p.color(KeyWarningColor, Warning)
	errColor := p.color(KeyErrorColor, Error)
	info := p.color(KeyAccentSecondary, Info)

	st := Styles{
		Header: lipgloss.NewStyle().
			Background(p.color(KeyNavbarBackground, PrimaryBold)).
			Foreground(p.color(KeyNavbarText, TextInverse)).
			Padding(0, 2).
			Bold(true),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(p.color(KeyNavbarText, TextInverse)).
			Bold(true),
		HeaderInfo: lipgloss.NewStyle().
			Foreground(p.color(KeyTextSecondary, lipgloss.AdaptiveColor{Light: "#DDD6FE", Dark: "#C4B5FD"})),
		HeaderBadge: lipgloss.NewStyle().
			Background(accent).
			Foreground(p.color(KeyPaginationActiveText, TextInverse)).
			Padding(0, 1).
			Bold(true),

		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.color(KeyTableBorder, Border)),
		TableHeader: lipgloss.NewStyle().
			Foreground(p.color(KeyTableHeaderText, TextMuted)).
			Background(p.color(KeyTableHeaderBackground, BgMuted)).
			Bold(true),
		Row: lipgloss.NewStyle().
			Foreground(text),
		RowStripe: lipgloss.NewStyle().
			Foreground(text).
			Background(p.color(KeyTableRowStripe, BgSubtle)),
		RowSelected: lipgloss.NewStyle().
			Foreground(p.color(KeyPaginationActiveText, TextInverse)).
			Background(p.color(KeyTableRowHover, accent)).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ScrollInfo: lipgloss.NewStyle().
			Foreground(p.color(KeyPaginationText, TextMuted)).
			Background(p.color(KeyPaginationBackground, lipgloss.NoColor{})),
		ScrollCurrent: lipgloss.NewStyle().
			Foreground(p.color(KeyPaginationActiveText, TextInverse)).
			Background(p.color(KeyPaginationActiveBackground, accent)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Background(card).
			Padding(1, 2),
		CardTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),
		DetailLabel: lipgloss.NewStyle().
			Foreground(textMuted).
			Width(12),
		DetailValue: lipgloss.NewStyle().
			Foreground(text),

		StatusBar: lipgloss.NewStyle().
			Background(p.color(KeyStatusbarBackground, BgSubtle)).
			Foreground(p.color(KeyStatusbarText, TextMuted)).
			Padding(0, 2),
		StatusKey: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(textSecondary),
		StatusDivider: lipgloss.NewStyle().
			Foreground(p.color(KeyBorderSecondary, Border)),

		StatusSuccess: lipgloss.NewStyle().Foreground(success),
		StatusWarning: lipgloss.NewStyle().Foreground(warning),
		StatusError:   lipgloss.NewStyle().Foreground(errColor),
		StatusInfo:    lipgloss.NewStyle().Foreground(info),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(focusBorder).
			Background(p.color(KeyModalBackground, BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.color(KeyInputBorder, Border)).
			Foreground(p.color(KeyInputText, Text)).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(focusBorder).
			Foreground(p.color(KeyInputText, Text)).
			Padding(0, 1),
		InputLabel: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.color(KeyButtonOutlineBorder, PrimaryMuted)).
			Foreground(p.color(KeyButtonOutlineText, accent)).
			Padding(0, 2),
		ButtonActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.color(KeyButtonOutlineBorder, accent)).
			Background(p.color(KeyButtonOutlineHoverBackground, BgHighlight)).
			Foreground(p.color(KeyButtonOutlineText, accent)).
			Bold(true).
			Padding(0, 2),

		Spinner: lipgloss.NewStyle().Foreground(accent),
		Muted:   lipgloss.NewStyle().Foreground(textMuted),
		Bold:    lipgloss.NewStyle().Bold(true).Foreground(text),
		Accent:  lipgloss.NewStyle().Foreground(accent),

		Backdrop:     p.backdrop,
		AccentColor:  accent,
		BorderColor:  border,
		GlowColor:    glow,
		HasGlow:      hasGlow,
		SuccessColor: success,
		ErrorColor:   errColor,
		WarningColor: warning,
		InfoColor:    info,
	}
	return st
}

type palette struct {
	surface   *Surface
	forceDark bool
	backdrop  colorful.Color
}

func (p palette) backdropColor() colorful.Color {
	fallback := BgBase.Light
	if p.forceDark || lipgloss.HasDarkBackground() {
		fallback = BgBase.Dark
	}
	base, _ := colorful.Hex(fallback)
	if p.surface == nil {
		return base
	}
	if c, ok := ParseColor(p.surface.Value(KeyBackground), base); ok {
		return c
	}
	return base
}

// color returns the slot color for k, or fallback when the slot is empty.
func (p palette) color(k Key, fallback lipgloss.TerminalColor) lipgloss.TerminalColor {
	if c, ok := p.optional(k); ok {
		return c
	}
	if ac, ok := fallback.(lipgloss.AdaptiveColor); ok && p.forceDark {
		return lipgloss.Color(ac.Dark)
	}
	return fallback
}

func (p palette) optional(k Key) (lipgloss.TerminalColor, bool) {
	if p.surface == nil {
		return lipgloss.NoColor{}, false
	}
	hex, ok := HexColor(p.surface.Value(k), p.backdrop)
	if !ok {
		return lipgloss.NoColor{}, false
	}
	return lipgloss.Color(hex), true
}
