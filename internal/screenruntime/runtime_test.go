package screenruntime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitIdle(t *testing.T, r interface{ WaitIdle(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.WaitIdle(ctx))
}

// gated returns a refresh func that blocks each call until release receives.
func gated(calls *atomic.Int32, release <-chan struct{}) RefreshFunc[int] {
	return func(ctx context.Context, intent Intent) (int, error) {
		n := calls.Add(1)
		<-release
		return int(n), nil
	}
}

func TestRuntime_InitialStatus(t *testing.T) {
	r := New(Options[int]{})
	st := r.GetStatus()
	assert.Equal(t, PhaseIdle, st.State)
	assert.False(t, st.RefreshInFlight)
	assert.False(t, st.RefreshQueued)
	assert.Zero(t, st.StaleDiscarded)
}

func TestRuntime_CoalescesRequests(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	var mu sync.Mutex
	var applied []int

	r := New(Options[int]{
		Refresh: gated(&calls, release),
		Apply: func(c Completion[int]) {
			mu.Lock()
			defer mu.Unlock()
			applied = append(applied, c.Value)
		},
	})

	assert.True(t, r.RunRefresh(IntentManual), "first call starts a refresh")
	assert.False(t, r.RunRefresh(IntentManual), "second call is queued")
	for i := 0; i < 5; i++ {
		assert.False(t, r.RunRefresh(IntentFollow))
	}

	st := r.GetStatus()
	assert.Equal(t, PhaseQueued, st.State)
	assert.True(t, st.RefreshInFlight)
	assert.True(t, st.RefreshQueued)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	close(release)
	waitIdle(t, r)

	assert.Equal(t, int32(2), calls.Load(), "exactly one follow-up ran")
	assert.Equal(t, []int{1, 2}, applied)
	st = r.GetStatus()
	assert.Equal(t, PhaseIdle, st.State)
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 2, st.Started)
}

func TestRuntime_SingleRequestRunsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	close(release)
	r := New(Options[int]{Refresh: gated(&calls, release)})

	r.RunRefresh(IntentMount)
	waitIdle(t, r)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRuntime_DiscardsStaleCompletion(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	var appliedCount atomic.Int32

	r := New(Options[int]{
		Refresh: gated(&calls, release),
		Apply:   func(Completion[int]) { appliedCount.Add(1) },
	})
	r.SetMountToken(1)
	r.RunRefresh(IntentMount)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	r.SetMountToken(2)
	close(release)
	waitIdle(t, r)

	st := r.GetStatus()
	assert.Equal(t, 1, st.StaleDiscarded)
	assert.Equal(t, 0, st.Completed)
	assert.Equal(t, int32(0), appliedCount.Load(), "stale result must not be applied")
	assert.Equal(t, uint64(2), st.MountToken)
}

func TestRuntime_DiscardStaleAfterDelivery(t *testing.T) {
	tests := []struct {
		name          string
		refreshes     int
		discards      int
		wantStale     int
		wantCompleted int
	}{
		{"one delivered then dropped", 1, 1, 1, 0},
		{"two delivered one dropped", 2, 1, 1, 1},
		{"drop without any delivery", 0, 1, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var delivered []Completion[int]
			var mu sync.Mutex
			r := New(Options[int]{
				Refresh: func(context.Context, Intent) (int, error) { return 7, nil },
				Apply: func(c Completion[int]) {
					mu.Lock()
					defer mu.Unlock()
					delivered = append(delivered, c)
				},
			})
			token := r.NextMountToken()
			for i := 0; i < tc.refreshes; i++ {
				r.RunRefresh(IntentManual)
				waitIdle(t, r)
			}
			r.NextMountToken()
			for i := 0; i < tc.discards; i++ {
				r.DiscardStale(token)
			}

			st := r.GetStatus()
			assert.Equal(t, tc.wantStale, st.StaleDiscarded)
			assert.Equal(t, tc.wantCompleted, st.Completed)
			mu.Lock()
			assert.Len(t, delivered, tc.refreshes)
			mu.Unlock()
		})
	}
}

func TestRuntime_QueuedRefreshAfterStaleUsesFreshToken(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	var tokens []uint64
	var mu sync.Mutex

	r := New(Options[int]{
		Refresh: gated(&calls, release),
		Apply: func(c Completion[int]) {
			mu.Lock()
			defer mu.Unlock()
			tokens = append(tokens, c.Token)
		},
	})
	first := r.NextMountToken()
	r.RunRefresh(IntentMount)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := r.NextMountToken()
	assert.Greater(t, second, first)
	r.RunRefresh(IntentMount)

	close(release)
	waitIdle(t, r)

	st := r.GetStatus()
	assert.Equal(t, 1, st.StaleDiscarded)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, []uint64{second}, tokens)
}

func TestRuntime_FailedRefreshCompletesCycle(t *testing.T) {
	boom := errors.New("boom")
	var got error
	r := New(Options[int]{
		Refresh: func(context.Context, Intent) (int, error) { return 0, boom },
		Apply:   func(c Completion[int]) { got = c.Err },
	})
	r.RunRefresh(IntentManual)
	waitIdle(t, r)
	assert.ErrorIs(t, got, boom)
	assert.Equal(t, PhaseIdle, r.GetStatus().State)

	// the runtime stays usable
	assert.True(t, r.RunRefresh(IntentManual))
	waitIdle(t, r)
}

func TestRuntime_RecoversPanics(t *testing.T) {
	var got error
	r := New(Options[int]{
		Refresh: func(context.Context, Intent) (int, error) { panic("kaboom") },
		Apply:   func(c Completion[int]) { got = c.Err },
	})
	r.RunRefresh(IntentManual)
	waitIdle(t, r)
	require.Error(t, got)
	assert.Contains(t, got.Error(), "kaboom")
}

func TestRuntime_WaitIdleHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	var calls atomic.Int32
	r := New(Options[int]{Refresh: gated(&calls, release)})
	r.RunRefresh(IntentManual)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.WaitIdle(ctx), context.DeadlineExceeded)
}

func TestRuntime_RecordError(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	r := New(Options[int]{Now: func() time.Time { return now }})

	assert.Equal(t, 1, r.RecordError("api down").Count)
	now = base.Add(500 * time.Millisecond)
	s := r.RecordError("api down")
	assert.Equal(t, 2, s.Count)
	assert.True(t, s.Suppressed())
	assert.Equal(t, s, r.GetStatus().ErrorStorm)

	r.ClearErrors()
	assert.Equal(t, 1, r.RecordError("api down").Count)
}
