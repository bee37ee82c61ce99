package theme

import "sort"

// Key names one visual property of a theme.
type Key string

// Required keys. Every resolved mapping carries all five.
const (
	KeyBackground     Key = "background"
	KeyTextColor      Key = "textColor"
	KeyAccent         Key = "accent"
	KeyCardBackground Key = "cardBackground"
	KeyBorderColor    Key = "borderColor"
)

// Extended keys. Optional; present only when a transform defines them.
const (
	KeyGlow                         Key = "glow"
	KeyBackgroundSecondary          Key = "backgroundSecondary"
	KeyTextSecondary                Key = "textSecondary"
	KeyTextMuted                    Key = "textMuted"
	KeyAccentSecondary              Key = "accentSecondary"
	KeyAccentHover                  Key = "accentHover"
	KeyBorderSecondary              Key = "borderSecondary"
	KeyShadow                       Key = "shadow"
	KeyNavbarBackground             Key = "navbarBackground"
	KeyNavbarText                   Key = "navbarText"
	KeyNavbarBorder                 Key = "navbarBorder"
	KeyTableBackground              Key = "tableBackground"
	KeyTableHeaderBackground        Key = "tableHeaderBackground"
	KeyTableHeaderText              Key = "tableHeaderText"
	KeyTableRowHover                Key = "tableRowHover"
	KeyTableRowStripe               Key = "tableRowStripe"
	KeyTableBorder                  Key = "tableBorder"
	KeyInputBackground              Key = "inputBackground"
	KeyInputText                    Key = "inputText"
	KeyInputBorder                  Key = "inputBorder"
	KeyInputFocusBorder             Key = "inputFocusBorder"
	KeyModalBackground              Key = "modalBackground"
	KeyModalOverlay                 Key = "modalOverlay"
	KeyPaginationBackground         Key = "paginationBackground"
	KeyPaginationText               Key = "paginationText"
	KeyPaginationActiveBackground   Key = "paginationActiveBackground"
	KeyPaginationActiveText         Key = "paginationActiveText"
	KeyButtonOutlineBorder          Key = "buttonOutlineBorder"
	KeyButtonOutlineText            Key = "buttonOutlineText"
	KeyButtonOutlineHoverBackground Key = "buttonOutlineHoverBackground"
	KeySuccessColor                 Key = "successColor"
	KeyErrorColor                   Key = "errorColor"
	KeyWarningColor                 Key = "warningColor"
	KeyStatusbarBackground          Key = "statusbarBackground"
	KeyStatusbarText                Key = "statusbarText"
)

// vocabulary is the closed key set in declaration order, paired with slot names.
var vocabulary = []struct {
	key  Key
	slot string
	base bool
}{
	{KeyBackground, "--bg-primary", true},
	{KeyTextColor, "--text-primary", true},
	{KeyAccent, "--accent-primary", true},
	{KeyCardBackground, "--card-bg", true},
	{KeyBorderColor, "--border-primary", true},

	{KeyGlow, "--glow-effect", false},
	{KeyBackgroundSecondary, "--bg-secondary", false},
	{KeyTextSecondary, "--text-secondary", false},
	{KeyTextMuted, "--text-muted", false},
	{KeyAccentSecondary, "--accent-secondary", false},
	{KeyAccentHover, "--accent-hover", false},
	{KeyBorderSecondary, "--border-secondary", false},
	{KeyShadow, "--shadow-color", false},
	{KeyNavbarBackground, "--navbar-bg", false},
	{KeyNavbarText, "--navbar-text", false},
	{KeyNavbarBorder, "--navbar-border", false},
	{KeyTableBackground, "--table-bg", false},
	{KeyTableHeaderBackground, "--table-header-bg", false},
	{KeyTableHeaderText, "--table-header-text", false},
	{KeyTableRowHover, "--table-row-hover", false},
	{KeyTableRowStripe, "--table-row-stripe", false},
	{KeyTableBorder, "--table-border", false},
	{KeyInputBackground, "--input-bg", false},
	{KeyInputText, "--input-text", false},
	{KeyInputBorder, "--input-border", false},
	{KeyInputFocusBorder, "--input-focus-border", false},
	{KeyModalBackground, "--modal-bg", false},
	{KeyModalOverlay, "--modal-overlay", false},
	{KeyPaginationBackground, "--pagination-bg", false},
	{KeyPaginationText, "--pagination-text", false},
	{KeyPaginationActiveBackground, "--pagination-active-bg", false},
	{KeyPaginationActiveText, "--pagination-active-text", false},
	{KeyButtonOutlineBorder, "--btn-outline-border", false},
	{KeyButtonOutlineText, "--btn-outline-text", false},
	{KeyButtonOutlineHoverBackground, "--btn-outline-hover-bg", false},
	{KeySuccessColor, "--success-color", false},
	{KeyErrorColor, "--error-color", false},
	{KeyWarningColor, "--warning-color", false},
	{KeyStatusbarBackground, "--statusbar-bg", false},
	{KeyStatusbarText, "--statusbar-text", false},
}

var (
	slotByKey = make(map[Key]string, len(vocabulary))
	keyBySlot = make(map[string]Key, len(vocabulary))
)

func init() {
	for _, v := range vocabulary {
		slotByKey[v.key] = v.slot
		keyBySlot[v.slot] = v.key
	}
}

// Keys returns the full vocabulary in declaration order.
func Keys() []Key {
	out := make([]Key, len(vocabulary))
	for i, v := range vocabulary {
		out[i] = v.key
	}
	return out
}

// BaseKeys returns the five required keys.
func BaseKeys() []Key {
	var out []Key
	for _, v := range vocabulary {
		if v.base {
			out = append(out, v.key)
		}
	}
	return out
}

// ExtendedKeys returns the optional keys.
func ExtendedKeys() []Key {
	var out []Key
	for _, v := range vocabulary {
		if !v.base {
			out = append(out, v.key)
		}
	}
	return out
}

// Slots returns every style slot name in vocabulary order.
func Slots() []string {
	out := make([]string, len(vocabulary))
	for i, v := range vocabulary {
		out[i] = v.slot
	}
	return out
}

// SlotFor returns the style slot a key is written to.
func SlotFor(k Key) (string, bool) {
	s, ok := slotByKey[k]
	return s, ok
}

// KeyForSlot is the inverse of SlotFor.
func KeyForSlot(slot string) (Key, bool) {
	k, ok := keyBySlot[slot]
	return k, ok
}

// IsKnown reports whether k belongs to the vocabulary.
func IsKnown(k Key) bool {
	_, ok := slotByKey[k]
	return ok
}

// Mapping is a set of property values keyed by vocabulary key.
type Mapping map[Key]string

// Clone returns an independent copy of m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SortedKeys returns the keys present in m, sorted by name.
func (m Mapping) SortedKeys() []Key {
	out := make([]Key, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
