// Package retry computes backoff delays and runs operations under a bounded
// retry budget.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"xytectl/internal/connectivity"
)

// NoJitter disables jitter; a zero JitterRatio takes the default instead.
const NoJitter = -1.0

// Policy bounds the retry loop. Zero fields take the defaults.
type Policy struct {
	MaxAttempts int
	BaseDelayMs int
	MaxDelayMs  int
	JitterRatio float64
}

// DefaultPolicy is 3 attempts, 250ms base, 5s cap, 20% jitter.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelayMs: 250, MaxDelayMs: 5000, JitterRatio: 0.2}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.BaseDelayMs <= 0 {
		p.BaseDelayMs = d.BaseDelayMs
	}
	if p.MaxDelayMs <= 0 {
		p.MaxDelayMs = d.MaxDelayMs
	}
	switch {
	case p.JitterRatio < 0:
		p.JitterRatio = 0
	case p.JitterRatio == 0:
		p.JitterRatio = d.JitterRatio
	}
	return p
}

// ComputeDelayMs returns the wait before retrying after attempt (1-based).
// random must yield values in [0,1); nil uses math/rand.
func ComputeDelayMs(attempt int, p Policy, random func() float64) int {
	p = p.withDefaults()
	if attempt < 1 {
		attempt = 1
	}
	if random == nil {
		random = rand.Float64
	}

	delay := float64(p.MaxDelayMs)
	// 2^(attempt-1) overflows long before it matters; cap the exponent.
	if attempt-1 < 31 {
		delay = math.Min(float64(p.MaxDelayMs), float64(p.BaseDelayMs)*math.Pow(2, float64(attempt-1)))
	}
	jitter := random() * delay * p.JitterRatio
	return int(math.Round(delay + jitter))
}

// IsRetryableErrorClass is false only for auth and missing_key.
func IsRetryableErrorClass(c connectivity.ErrorClass) bool {
	return c.Retriable()
}

// State is the attempt bookkeeping of one operation. NextRetryMs is set only
// while another attempt is pending.
type State struct {
	Attempts    int                     `json:"attempts"`
	Retried     bool                    `json:"retried"`
	NextRetryMs *int                    `json:"nextRetryMs,omitempty"`
	LastClass   connectivity.ErrorClass `json:"lastClass,omitempty"`
}

// Runner executes an operation under a Policy.
type Runner struct {
	Policy Policy
	Random func() float64
	// Sleep waits d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is told about each scheduled retry before the wait starts.
	OnRetry func(s State, err error)
}

// Do calls op until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. The returned State describes the final attempt.
func (r Runner) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) (State, error) {
	p := r.Policy.withDefaults()
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var st State
	for attempt := 1; ; attempt++ {
		st.Attempts = attempt
		st.Retried = attempt > 1
		st.NextRetryMs = nil

		err := op(ctx, attempt)
		if err == nil {
			st.LastClass = ""
			return st, nil
		}
		st.LastClass = connectivity.Classify(err)

		if attempt >= p.MaxAttempts || !IsRetryableErrorClass(st.LastClass) || ctx.Err() != nil {
			return st, err
		}

		delay := ComputeDelayMs(attempt, p, r.Random)
		st.NextRetryMs = &delay
		if r.OnRetry != nil {
			r.OnRetry(st, err)
		}
		if serr := sleep(ctx, time.Duration(delay)*time.Millisecond); serr != nil {
			st.NextRetryMs = nil
			return st, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
