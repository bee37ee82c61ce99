// Package theme provides composable themes and the style surface they are applied to.
package theme

// Name identifies a registered theme.
type Name string

// Built-in theme names.
const (
	NameDefault Name = "default"
	NameDark    Name = "dark"
	NameLight   Name = "light"
	NameNeon    Name = "neon"
)

// Base returns the default five-key mapping. Each call returns a fresh copy.
func Base() Mapping {
	return Mapping{
		KeyBackground:     "#0f172a",
		KeyTextColor:      "#e2e8f0",
		KeyAccent:         "#667eea",
		KeyCardBackground: "rgba(30, 41, 59, 0.98)",
		KeyBorderColor:    "#334155",
	}
}

// Transform returns a new mapping derived from its input.
// Implementations must not mutate the input or drop keys from it.
type Transform func(Mapping) Mapping

// Override returns a transform that copies its input and sets every key in table.
func Override(table Mapping) Transform {
	table = table.Clone()
	return func(in Mapping) Mapping {
		out := in.Clone()
		for k, v := range table {
			out[k] = v
		}
		return out
	}
}

// Chain folds transforms left to right: Chain(a, b)(m) == b(a(m)).
func Chain(ts ...Transform) Transform {
	return func(in Mapping) Mapping {
		out := in.Clone()
		for _, t := range ts {
			out = t(out)
		}
		return out
	}
}

// Dark is the dark theme transform.
var Dark = Override(Mapping{
	KeyBackground:     "#000000",
	KeyTextColor:      "#ffffff",
	KeyAccent:         "#ff6b6b",
	KeyCardBackground: "rgba(0, 0, 0, 0.9)",
	KeyBorderColor:    "#333333",

	KeyGlow:                         "0 0 12px rgba(255, 107, 107, 0.35)",
	KeyBackgroundSecondary:          "#111111",
	KeyTextSecondary:                "#d4d4d4",
	KeyTextMuted:                    "#8a8a8a",
	KeyAccentSecondary:              "#ffa94d",
	KeyAccentHover:                  "#ff8787",
	KeyBorderSecondary:              "#262626",
	KeyShadow:                       "rgba(0, 0, 0, 0.6)",
	KeyNavbarBackground:             "#0d0d0d",
	KeyNavbarText:                   "#f5f5f5",
	KeyNavbarBorder:                 "#2b2b2b",
	KeyTableBackground:              "#0a0a0a",
	KeyTableHeaderBackground:        "#1a1a1a",
	KeyTableHeaderText:              "#ff6b6b",
	KeyTableRowHover:                "#1f1f1f",
	KeyTableRowStripe:               "#141414",
	KeyTableBorder:                  "#2e2e2e",
	KeyInputBackground:              "#141414",
	KeyInputText:                    "#ffffff",
	KeyInputBorder:                  "#3a3a3a",
	KeyInputFocusBorder:             "#ff6b6b",
	KeyModalBackground:              "#121212",
	KeyModalOverlay:                 "rgba(0, 0, 0, 0.8)",
	KeyPaginationBackground:         "#1a1a1a",
	KeyPaginationText:               "#d4d4d4",
	KeyPaginationActiveBackground:   "#ff6b6b",
	KeyPaginationActiveText:         "#000000",
	KeyButtonOutlineBorder:          "#ff6b6b",
	KeyButtonOutlineText:            "#ff6b6b",
	KeyButtonOutlineHoverBackground: "rgba(255, 107, 107, 0.15)",
	KeySuccessColor:                 "#51cf66",
	KeyErrorColor:                   "#ff6b6b",
	KeyWarningColor:                 "#fcc419",
	KeyStatusbarBackground:          "#111111",
	KeyStatusbarText:                "#bdbdbd",
})

// Light is the light theme transform.
var Light = Override(Mapping{
	KeyBackground:     "linear-gradient(135deg, #f8f9fa 0%, #e9ecef 100%)",
	KeyTextColor:      "#212529",
	KeyAccent:         "#007bff",
	KeyCardBackground: "rgba(255, 255, 255, 0.95)",
	KeyBorderColor:    "#dee2e6",

	KeyGlow:                         "0 0 10px rgba(0, 123, 255, 0.25)",
	KeyBackgroundSecondary:          "#f1f3f5",
	KeyTextSecondary:                "#495057",
	KeyTextMuted:                    "#6c757d",
	KeyAccentSecondary:              "#6610f2",
	KeyAccentHover:                  "#0056b3",
	KeyBorderSecondary:              "#ced4da",
	KeyShadow:                       "rgba(0, 0, 0, 0.1)",
	KeyNavbarBackground:             "#ffffff",
	KeyNavbarText:                   "#212529",
	KeyNavbarBorder:                 "#dee2e6",
	KeyTableBackground:              "#ffffff",
	KeyTableHeaderBackground:        "#e9ecef",
	KeyTableHeaderText:              "#343a40",
	KeyTableRowHover:                "#e7f1ff",
	KeyTableRowStripe:               "#f8f9fa",
	KeyTableBorder:                  "#dee2e6",
	KeyInputBackground:              "#ffffff",
	KeyInputText:                    "#212529",
	KeyInputBorder:                  "#ced4da",
	KeyInputFocusBorder:             "#80bdff",
	KeyModalBackground:              "#ffffff",
	KeyModalOverlay:                 "rgba(0, 0, 0, 0.4)",
	KeyPaginationBackground:         "#ffffff",
	KeyPaginationText:               "#007bff",
	KeyPaginationActiveBackground:   "#007bff",
	KeyPaginationActiveText:         "#ffffff",
	KeyButtonOutlineBorder:          "#007bff",
	KeyButtonOutlineText:            "#007bff",
	KeyButtonOutlineHoverBackground: "rgba(0, 123, 255, 0.1)",
	KeySuccessColor:                 "#28a745",
	KeyErrorColor:                   "#dc3545",
	KeyWarningColor:                 "#ffc107",
	KeyStatusbarBackground:          "#e9ecef",
	KeyStatusbarText:                "#495057",
})

// Neon is the neon theme transform. It defines the base keys and glow only.
var Neon = Override(Mapping{
	KeyBackground:     "#0a0a0a",
	KeyTextColor:      "#00ff00",
	KeyAccent:         "#ff00ff",
	KeyCardBackground: "rgba(0, 255, 0, 0.1)",
	KeyBorderColor:    "#00ff00",
	KeyGlow:           "0 0 20px #00ff00",
})
