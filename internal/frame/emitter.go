package frame

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"xytectl/internal/tablefmt"
)

// ErrSinkClosed is returned by Emit when the consumer went away. Callers
// end their emission loop without reporting an error.
var ErrSinkClosed = errors.New("frame sink closed")

// Writer serializes one frame per call.
type Writer interface {
	WriteFrame(f Frame) error
}

// Emitter stamps envelopes with the session id and the next sequence number.
type Emitter struct {
	mu        sync.Mutex
	sessionID string
	next      int
	now       func() time.Time
	out       Writer
}

// NewEmitter creates an emitter with a fresh session id. out may be nil when
// frames are only built.
func NewEmitter(out Writer) *Emitter {
	return &Emitter{sessionID: uuid.NewString(), now: time.Now, out: out}
}

// WithClock replaces the timestamp source.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	e.now = now
	return e
}

// SessionID returns the id shared by every frame of this emitter.
func (e *Emitter) SessionID() string {
	return e.sessionID
}

// Build assigns the next sequence number and returns the finished frame.
func (e *Emitter) Build(env Envelope) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := assemble(env, e.sessionID, e.next, e.now())
	e.next++
	return f
}

// Rebuild refreshes a frame in place: it keeps the sequence of prev and
// does not advance the counter.
func (e *Emitter) Rebuild(prev Frame, env Envelope) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return assemble(env, e.sessionID, prev.Sequence, e.now())
}

// Emit builds and writes one frame. Writes are serialized so sequence order
// matches output order.
func (e *Emitter) Emit(env Envelope) (Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := assemble(env, e.sessionID, e.next, e.now())
	e.next++
	if e.out == nil {
		return f, nil
	}
	if err := e.out.WriteFrame(f); err != nil {
		if IsBrokenPipe(err) {
			return f, fmt.Errorf("%w: %v", ErrSinkClosed, err)
		}
		return f, fmt.Errorf("write frame %d: %w", f.Sequence, err)
	}
	return f, nil
}

// IsBrokenPipe reports whether err means the reader closed its end.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, ErrSinkClosed) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "broken pipe")
}

// NDJSONWriter writes each frame as one compact JSON line.
type NDJSONWriter struct {
	w io.Writer
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{w: w}
}

func (n *NDJSONWriter) WriteFrame(f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	_, err = n.w.Write(append(b, '\n'))
	return err
}

// TextWriter writes a human summary of each frame.
type TextWriter struct {
	w io.Writer
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

func (t *TextWriter) WriteFrame(f Frame) error {
	_, err := io.WriteString(t.w, FormatText(f))
	return err
}

// FormatText renders f as a header line followed by one block per panel.
func FormatText(f Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s · %s\n", f.Sequence, f.Screen, f.Status)
	if f.Meta.RedirectedFrom != "" {
		fmt.Fprintf(&b, "(redirected from %s)\n", f.Meta.RedirectedFrom)
	}
	for _, p := range f.Panels {
		fmt.Fprintf(&b, "\n== %s ==\n", p.Title)
		for _, line := range p.Lines(tablefmt.RenderLines) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}
