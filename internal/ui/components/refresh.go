package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/ui/theme"
)

// DefaultRefreshInterval is used when no interval is configured.
const DefaultRefreshInterval = 30 * time.Second

// AutoRefreshTickMsg is sent on each auto-refresh tick
type AutoRefreshTickMsg time.Time

// RefreshIndicator shows the auto-refresh status and drives the re-list ticker.
type RefreshIndicator struct {
	enabled      bool
	interval     time.Duration
	lastRefresh  time.Time
	refreshing   bool
	frame        int
	spinnerChars []string
	styles       theme.Styles
	now          func() time.Time
}

// NewRefreshIndicator creates a new refresh indicator
func NewRefreshIndicator() *RefreshIndicator {
	return &RefreshIndicator{
		enabled:      true,
		interval:     DefaultRefreshInterval,
		lastRefresh:  time.Now(),
		spinnerChars: []string{"◴", "◷", "◶", "◵"},
		styles:       theme.DefaultStyles(),
		now:          time.Now,
	}
}

// SetStyles applies the active theme.
func (r *RefreshIndicator) SetStyles(st theme.Styles) {
	r.styles = st
}

// SetEnabled enables or disables auto-refresh
func (r *RefreshIndicator) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// IsEnabled returns whether auto-refresh is enabled
func (r *RefreshIndicator) IsEnabled() bool {
	return r.enabled
}

// SetInterval sets the refresh interval. Non-positive values keep the current one.
func (r *RefreshIndicator) SetInterval(interval time.Duration) {
	if interval > 0 {
		r.interval = interval
	}
}

// Interval returns the refresh interval.
func (r *RefreshIndicator) Interval() time.Duration {
	return r.interval
}

// SetRefreshing sets the refreshing state
func (r *RefreshIndicator) SetRefreshing(refreshing bool) {
	r.refreshing = refreshing
	if !refreshing {
		r.lastRefresh = r.now()
	}
}

// IsRefreshing returns whether a refresh is in progress
func (r *RefreshIndicator) IsRefreshing() bool {
	return r.refreshing
}

// Tick advances the spinner animation
func (r *RefreshIndicator) Tick() {
	r.frame = (r.frame + 1) % len(r.spinnerChars)
}

// TickCmd schedules the next auto-refresh tick. Ticks keep coming while
// disabled, so re-enabling needs no restart.
func (r *RefreshIndicator) TickCmd() tea.Cmd {
	return tea.Tick(r.interval, func(t time.Time) tea.Msg {
		return AutoRefreshTickMsg(t)
	})
}

// TimeSinceRefresh returns time since last refresh
func (r *RefreshIndicator) TimeSinceRefresh() time.Duration {
	return r.now().Sub(r.lastRefresh)
}

// View renders the compact refresh indicator
func (r *RefreshIndicator) View() string {
	if !r.enabled {
		return r.styles.Muted.Render("⏸")
	}
	if r.refreshing {
		return r.styles.Accent.Render(r.spinnerChars[r.frame])
	}

	elapsed := r.TimeSinceRefresh()
	indicator := "○"
	switch {
	case elapsed < 5*time.Second:
		indicator = "●"
	case elapsed < r.interval/2:
		indicator = "◐"
	}
	return r.styles.StatusSuccess.Render(indicator)
}

// StatusView returns a more detailed status for the header
func (r *RefreshIndicator) StatusView() string {
	if !r.enabled {
		return r.styles.Muted.Render("auto-refresh off")
	}
	if r.refreshing {
		return r.styles.Accent.Render(r.spinnerChars[r.frame] + " refreshing...")
	}
	return r.styles.Muted.Render(Ago(r.TimeSinceRefresh()))
}

// Ago formats an elapsed duration as "just now", "12s ago" or "3m ago".
func Ago(elapsed time.Duration) string {
	seconds := int(elapsed.Seconds())
	switch {
	case seconds < 1:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	default:
		return fmt.Sprintf("%dm ago", seconds/60)
	}
}
