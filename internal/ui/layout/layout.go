// Package layout provides responsive layout calculations for the TUI.
package layout

// Dimensions holds the calculated dimensions for each UI region.
type Dimensions struct {
	// Total terminal size
	TermWidth  int
	TermHeight int

	// Header
	HeaderHeight int

	// Footer (key hints)
	StatusHeight int

	// Logs panel, zero when hidden
	LogsHeight int

	// Content area between header and footer, minus logs
	ContentHeight int
	ContentWidth  int

	// Student table
	TableWidth  int
	TableHeight int

	// Details pane, zero in single-pane mode
	DetailsWidth  int
	DetailsHeight int

	// Layout mode
	Mode Mode
}

// Mode determines how content is arranged.
type Mode int

const (
	// ModeTooSmall - terminal too small to display anything useful
	ModeTooSmall Mode = iota
	// ModeSinglePane - table only
	ModeSinglePane
	// ModeSplitPane - table plus details pane
	ModeSplitPane
)

// String returns a short name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeTooSmall:
		return "too-small"
	case ModeSinglePane:
		return "single"
	case ModeSplitPane:
		return "split"
	default:
		return "unknown"
	}
}

// Constraints define minimum sizes and ratios.
type Constraints struct {
	MinWidth        int     // Minimum usable terminal width
	MinHeight       int     // Minimum usable terminal height
	MinSplitWidth   int     // Minimum width to show the details pane
	TableRatio      float64 // Table width as ratio of total (0.0-1.0)
	MinDetailsWidth int     // Minimum details width in split mode
	MaxDetailsWidth int     // Maximum details width in split mode
	HeaderHeight    int     // Fixed header height
	StatusHeight    int     // Fixed footer height
	LogsHeight      int     // Logs panel height when shown
	MinLogsHeight   int     // Minimum terminal height to show logs
}

// DefaultConstraints returns sensible default constraints.
func DefaultConstraints() Constraints {
	return Constraints{
		MinWidth:        40,
		MinHeight:       10,
		MinSplitWidth:   100,
		TableRatio:      0.62,
		MinDetailsWidth: 30,
		MaxDetailsWidth: 56,
		HeaderHeight:    1,
		StatusHeight:    1,
		LogsHeight:      8,
		MinLogsHeight:   20,
	}
}

// Calculate computes layout dimensions based on terminal size and constraints.
// extra is the number of rows taken by transient content such as toasts.
func Calculate(width, height int, showLogs bool, extra int, c Constraints) Dimensions {
	d := Dimensions{
		TermWidth:    width,
		TermHeight:   height,
		HeaderHeight: c.HeaderHeight,
		StatusHeight: c.StatusHeight,
	}

	if width < c.MinWidth || height < c.MinHeight {
		d.Mode = ModeTooSmall
		return d
	}

	if showLogs && height >= c.MinLogsHeight {
		d.LogsHeight = c.LogsHeight
	}

	d.ContentHeight = height - c.HeaderHeight - c.StatusHeight - d.LogsHeight - max(0, extra)
	if d.ContentHeight < 3 {
		d.ContentHeight = 3
	}
	d.ContentWidth = width

	if width < c.MinSplitWidth {
		d.Mode = ModeSinglePane
		d.TableWidth = width
		d.TableHeight = d.ContentHeight
		return d
	}

	d.Mode = ModeSplitPane
	details := width - int(float64(width)*c.TableRatio)
	details = max(details, c.MinDetailsWidth)
	details = min(details, c.MaxDetailsWidth)

	d.DetailsWidth = details
	d.DetailsHeight = d.ContentHeight
	d.TableWidth = width - details
	d.TableHeight = d.ContentHeight
	return d
}

// CalculateWithDefaults is a convenience function using default constraints.
func CalculateWithDefaults(width, height int, showLogs bool) Dimensions {
	return Calculate(width, height, showLogs, 0, DefaultConstraints())
}
