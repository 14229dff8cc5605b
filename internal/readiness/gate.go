package readiness

import "xytectl/internal/screen"

// Decision is the screen actually served for a request.
type Decision struct {
	Screen         screen.ID
	RedirectedFrom screen.ID
}

// Redirected reports whether the requested screen was substituted.
func (d Decision) Redirected() bool {
	return d.RedirectedFrom != ""
}

// Route serves requested unless it is operational and readiness is not
// ready, in which case the setup screen is served instead.
func Route(requested screen.ID, r Result) Decision {
	if screen.IsOperational(requested) && !r.Ready() {
		return Decision{Screen: screen.Setup, RedirectedFrom: requested}
	}
	return Decision{Screen: requested}
}
