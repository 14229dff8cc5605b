package screenruntime

import "time"

// ErrorStormWindow is how long identical errors keep accumulating into one storm.
const ErrorStormWindow = 2000 * time.Millisecond

// ErrorStorm tracks repeats of one failure message.
type ErrorStorm struct {
	Message   string    `json:"message,omitempty"`
	Count     int       `json:"count"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// NextErrorStorm returns the storm after message occurs at now. The window is
// anchored at the first occurrence, not the latest.
func NextErrorStorm(prev ErrorStorm, message string, now time.Time) ErrorStorm {
	if prev.Count > 0 && message == prev.Message && now.Sub(prev.StartedAt) <= ErrorStormWindow {
		prev.Count++
		return prev
	}
	return ErrorStorm{Message: message, Count: 1, StartedAt: now}
}

// Suppressed reports whether the latest occurrence repeats an announced error.
func (s ErrorStorm) Suppressed() bool {
	return s.Count > 1
}
