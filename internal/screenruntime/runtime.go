package screenruntime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"xytectl/pkg/logging"
)

const subsystem = "ScreenRuntime"

// Phase is the refresh state of a Runtime.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRefreshing Phase = "refreshing"
	PhaseQueued     Phase = "refreshing+queued"
)

// Intent labels why a refresh was requested. It does not affect the outcome.
type Intent string

const (
	IntentMount  Intent = "mount"
	IntentManual Intent = "manual"
	IntentFollow Intent = "follow"
)

// RefreshFunc fetches the state for the current screen.
type RefreshFunc[T any] func(ctx context.Context, intent Intent) (T, error)

// Completion is one finished refresh that was still current when it finished.
type Completion[T any] struct {
	Token    uint64
	Intent   Intent
	Value    T
	Err      error
	Started  time.Time
	Finished time.Time
}

// Options configures a Runtime.
type Options[T any] struct {
	Refresh RefreshFunc[T]
	// Apply receives completions whose token still matches. Called from the
	// refresh goroutine, one completion at a time.
	Apply func(Completion[T])
	// Context is handed to every refresh; cancelling it is process shutdown,
	// not per-refresh cancellation.
	Context context.Context
	Logger  *logging.Logger
	Now     func() time.Time
}

// Status is a read-only snapshot for observability.
type Status struct {
	State           Phase      `json:"state"`
	RefreshInFlight bool       `json:"refreshInFlight"`
	RefreshQueued   bool       `json:"refreshQueued"`
	StaleDiscarded  int        `json:"staleDiscarded"`
	Completed       int        `json:"completed"`
	Started         int        `json:"started"`
	MountToken      uint64     `json:"mountToken"`
	ErrorStorm      ErrorStorm `json:"errorStorm"`
}

// Runtime is the per-process refresh coordinator.
type Runtime[T any] struct {
	refresh RefreshFunc[T]
	apply   func(Completion[T])
	ctx     context.Context
	log     *logging.Logger
	now     func() time.Time

	mu             sync.Mutex
	token          uint64
	phase          Phase
	queuedIntent   Intent
	staleDiscarded int
	completed      int
	started        int
	storm          ErrorStorm
	idle           chan struct{}
}

// New creates an idle Runtime.
func New[T any](opts Options[T]) *Runtime[T] {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	idle := make(chan struct{})
	close(idle)
	return &Runtime[T]{
		refresh: opts.Refresh,
		apply:   opts.Apply,
		ctx:     ctx,
		log:     opts.Logger,
		now:     now,
		phase:   PhaseIdle,
		idle:    idle,
	}
}

// SetMountToken records the token of the currently mounted screen. Refreshes
// started under any other token become stale.
func (r *Runtime[T]) SetMountToken(token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

// NextMountToken advances the mount token by one and returns it.
func (r *Runtime[T]) NextMountToken() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token++
	return r.token
}

// MountToken returns the current token.
func (r *Runtime[T]) MountToken() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// RunRefresh requests a refresh. From idle it starts one immediately and
// returns true. While refreshing it queues one follow-up; while already
// queued it does nothing.
func (r *Runtime[T]) RunRefresh(intent Intent) bool {
	r.mu.Lock()
	switch r.phase {
	case PhaseIdle:
		r.phase = PhaseRefreshing
		r.idle = make(chan struct{})
		token := r.token
		r.started++
		r.mu.Unlock()
		r.log.Debug(subsystem, "refresh started (intent=%s token=%d)", intent, token)
		go r.execute(token, intent)
		return true
	case PhaseRefreshing:
		r.phase = PhaseQueued
		r.queuedIntent = intent
		r.mu.Unlock()
		r.log.Debug(subsystem, "refresh queued (intent=%s)", intent)
		return false
	default:
		r.mu.Unlock()
		return false
	}
}

func (r *Runtime[T]) execute(token uint64, intent Intent) {
	c := Completion[T]{Token: token, Intent: intent, Started: r.now()}
	c.Value, c.Err = r.invoke(intent)
	c.Finished = r.now()
	r.complete(c)
}

func (r *Runtime[T]) invoke(intent Intent) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("refresh panicked: %v", p)
		}
	}()
	if r.refresh == nil {
		return value, nil
	}
	return r.refresh(r.ctx, intent)
}

func (r *Runtime[T]) complete(c Completion[T]) {
	r.mu.Lock()
	stale := c.Token != r.token
	if stale {
		r.staleDiscarded++
	} else {
		r.completed++
	}
	current := r.token
	r.mu.Unlock()

	if stale {
		r.log.Debug(subsystem, "discarded stale refresh (started token=%d current=%d)", c.Token, current)
	} else if r.apply != nil {
		r.apply(c)
	}

	r.mu.Lock()
	if r.phase == PhaseQueued {
		r.phase = PhaseRefreshing
		intent := r.queuedIntent
		r.queuedIntent = ""
		token := r.token
		r.started++
		r.mu.Unlock()
		r.log.Debug(subsystem, "running queued refresh (intent=%s token=%d)", intent, token)
		go r.execute(token, intent)
		return
	}
	r.phase = PhaseIdle
	close(r.idle)
	r.mu.Unlock()
}

// DiscardStale reclassifies a completion the caller dropped because the
// mount token moved between delivery and apply.
func (r *Runtime[T]) DiscardStale(token uint64) {
	r.mu.Lock()
	r.staleDiscarded++
	if r.completed > 0 {
		r.completed--
	}
	current := r.token
	r.mu.Unlock()
	r.log.Debug(subsystem, "discarded stale refresh at apply (started token=%d current=%d)", token, current)
}

// GetStatus returns a snapshot of the runtime state.
func (r *Runtime[T]) GetStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		State:           r.phase,
		RefreshInFlight: r.phase != PhaseIdle,
		RefreshQueued:   r.phase == PhaseQueued,
		StaleDiscarded:  r.staleDiscarded,
		Completed:       r.completed,
		Started:         r.started,
		MountToken:      r.token,
		ErrorStorm:      r.storm,
	}
}

// WaitIdle blocks until no refresh is in flight or queued, or ctx is done.
func (r *Runtime[T]) WaitIdle(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.phase == PhaseIdle {
			r.mu.Unlock()
			return nil
		}
		idle := r.idle
		r.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RecordError folds message into the error-storm tracker and returns the
// updated storm. Count > 1 means the caller should not announce it again.
func (r *Runtime[T]) RecordError(message string) ErrorStorm {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storm = NextErrorStorm(r.storm, message, r.now())
	return r.storm
}

// ClearErrors resets the error-storm tracker after a successful refresh.
func (r *Runtime[T]) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storm = ErrorStorm{}
}
