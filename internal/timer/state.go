package timer

import "fmt"

// State is the shared rest-timer state observed by every UI surface.
// RemainingSeconds and Running are durable; PanelVisible is a UI flag that
// always starts false after a restart.
type State struct {
	RemainingSeconds int  `json:"remaining_seconds"`
	Running          bool `json:"is_running"`
	PanelVisible     bool `json:"is_panel_visible"`
}

// Display returns the countdown formatted as zero-padded MM:SS.
func (s State) Display() string {
	return FormatMMSS(s.RemainingSeconds)
}

// FormatMMSS renders a second count as zero-padded two-digit minutes and
// seconds. Negative input renders as 00:00.
func FormatMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
