package connectivity

import (
	"context"
	"time"

	"xytectl/internal/api"
)

// Result is the value produced by one probe. It is never mutated after construction.
type Result struct {
	State     State      `json:"state"`
	Class     ErrorClass `json:"class,omitempty"`
	Retriable bool       `json:"retriable"`
	Message   string     `json:"message,omitempty"`
	Endpoint  string     `json:"endpoint,omitempty"`
	CheckedAt time.Time  `json:"checkedAt,omitempty"`
}

// NotChecked is the result when no probe was requested.
func NotChecked() Result {
	return Result{State: StateNotChecked, Retriable: true}
}

// Connected reports a successful probe of endpoint.
func Connected(endpoint string, at time.Time) Result {
	return Result{State: StateConnected, Retriable: true, Endpoint: endpoint, CheckedAt: at}
}

// FromError classifies err as a failed probe of endpoint.
func FromError(endpoint string, err error, at time.Time) Result {
	class := Classify(err)
	return Result{
		State:     class.State(),
		Class:     class,
		Retriable: class.Retriable(),
		Message:   err.Error(),
		Endpoint:  endpoint,
		CheckedAt: at,
	}
}

// severity orders states least to most severe. not_checked sits below connected.
var severity = map[State]int{
	StateNotChecked:   -1,
	StateConnected:    0,
	StateRateLimited:  1,
	StateNetworkError: 2,
	StateTimeout:      3,
	StateAuthRequired: 4,
	StateMissingKey:   5,
	StateUnknownError: 6,
}

// Severity returns the rank of s; unknown states rank as unknown_error.
func Severity(s State) int {
	if v, ok := severity[s]; ok {
		return v
	}
	return severity[StateUnknownError]
}

// MoreSevere returns whichever of a and b ranks higher, preferring a on ties.
func MoreSevere(a, b Result) Result {
	if Severity(b.State) > Severity(a.State) {
		return b
	}
	return a
}

// Prober runs the two-call connectivity check.
type Prober struct {
	Client api.Client
	Now    func() time.Time
}

// Probe calls organization info; on failure it tries the partner device
// listing. Either success means connected. When both fail the more severe
// classification is returned.
func (p Prober) Probe(ctx context.Context) Result {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	if p.Client == nil {
		return FromError(api.EndpointOrganization, api.NewMissingKeyError(api.EndpointOrganization), now())
	}

	_, err := p.Client.GetOrganizationInfo(ctx)
	if err == nil {
		return Connected(api.EndpointOrganization, now())
	}
	primary := FromError(api.EndpointOrganization, err, now())

	if _, err := p.Client.ListPartnerDevices(ctx); err != nil {
		return MoreSevere(primary, FromError(api.EndpointPartnerDevices, err, now()))
	}
	return Connected(api.EndpointPartnerDevices, now())
}
