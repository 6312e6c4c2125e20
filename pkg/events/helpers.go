package events

import (
	"strings"
	"sync"
	"time"

	"github.com/loom-ui/loom/pkg/dom"
)

// Chord returns the canonical shortcut string for a key event: active
// modifiers in fixed Ctrl, Alt, Shift, Meta order, then the key name,
// joined with "+".
func Chord(e *dom.Event) string {
	var parts []string
	if e.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if e.Alt {
		parts = append(parts, "Alt")
	}
	if e.Shift {
		parts = append(parts, "Shift")
	}
	if e.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, e.Key)
	return strings.Join(parts, "+")
}

// BindShortcuts attaches a keydown handler on el that looks up the
// canonical chord of each key event in bindings and runs the bound
// action. Unbound chords are ignored. The returned cleanup detaches the
// handler.
func (m *Multiplexer) BindShortcuts(el *dom.Node, bindings map[string]func()) func() {
	reg := m.Attach(el, "keydown", func(e *dom.Event) {
		if action, ok := bindings[Chord(e)]; ok {
			action()
		}
	})
	return func() {
		m.Detach(el, "keydown", reg)
	}
}

// Throttle attaches a trailing-edge throttled handler: a burst of events
// within one delay window produces exactly one invocation, carrying the
// last event of the burst; intermediate occurrences are dropped. The
// returned cleanup detaches the handler and cancels any pending window.
func (m *Multiplexer) Throttle(el *dom.Node, eventType string, handler Handler, window time.Duration) func() {
	var (
		mu      sync.Mutex
		timer   *time.Timer
		pending *dom.Event
		closed  bool
	)

	throttled := func(e *dom.Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		pending = e
		if timer != nil {
			return // window already open, coalesce
		}
		timer = time.AfterFunc(window, func() {
			mu.Lock()
			e := pending
			pending = nil
			timer = nil
			done := closed
			mu.Unlock()
			if !done && e != nil {
				handler(e)
			}
		})
	}

	reg := m.Attach(el, eventType, throttled)
	return func() {
		mu.Lock()
		closed = true
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		mu.Unlock()
		m.Detach(el, eventType, reg)
	}
}

// Guard is a time-boxed re-entrancy guard for toggle-style actions: the
// first Allow in a window passes, the rest are rejected until the window
// elapses.
type Guard struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
}

// NewGuard creates a guard with the given window.
func NewGuard(window time.Duration) *Guard {
	return &Guard{window: window}
}

// Allow reports whether the action may run now, and if so opens the
// rejection window.
func (g *Guard) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	if now.Sub(g.last) < g.window {
		return false
	}
	g.last = now
	return true
}
