package theme

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// lightHints are environment variables whose value mentions "light" when the
// terminal profile has a light background.
var lightHints = []string{
	"CLASSDESK_TERMINAL_THEME",
	"ITERM_PROFILE",
	"VSCODE_THEME_KIND",
}

// Detect picks the built-in theme that matches the terminal background:
// NameLight for light terminals, NameDark otherwise.
func Detect() Name {
	if light, ok := backgroundFromColorFGBG(os.Getenv("COLORFGBG")); ok {
		if light {
			return NameLight
		}
		return NameDark
	}

	for _, env := range lightHints {
		if strings.Contains(strings.ToLower(os.Getenv(env)), "light") {
			return NameLight
		}
	}

	if runtime.GOOS == "darwin" && macOSAppearance() == "light" {
		return NameLight
	}
	return NameDark
}

// backgroundFromColorFGBG reads the "fg;bg[;extra]" form some terminals
// export. ANSI 7 and 9-15 are light backgrounds.
func backgroundFromColorFGBG(value string) (light, ok bool) {
	parts := strings.Split(value, ";")
	if len(parts) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(parts[1])
	if err != nil {
		return false, false
	}
	return bg == 7 || (bg >= 9 && bg <= 15), true
}

// macOSAppearance reports "dark" or "light". AppleInterfaceStyle is only set
// while dark mode is on.
func macOSAppearance() string {
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil || !strings.Contains(strings.ToLower(string(out)), "dark") {
		return "light"
	}
	return "dark"
}

// FromFlag maps a --theme value to a theme name. "auto" runs Detect; an empty
// value means "use the saved preference" and returns ok == false.
func FromFlag(value string) (Name, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return "", false
	case "auto":
		return Detect(), true
	default:
		return Name(value), true
	}
}
