package events

import (
	"log/slog"

	"github.com/loom-ui/loom/pkg/dom"
)

// Handler is a logical event handler.
type Handler func(*dom.Event)

// Registration is the handle returned by Attach. Funcs are not
// comparable in Go, and closures minted from one literal share a code
// pointer, so the handle, not the function value, identifies a handler
// for detachment.
type Registration struct {
	id int
	fn Handler
}

// Multiplexer collapses arbitrarily many logical handlers per
// (element, event type) pair into one physical host listener. It owns a
// side-table keyed by element identity; an entry is dropped as soon as
// its last handler detaches, so the table never keeps elements alive
// beyond their natural lifetime.
type Multiplexer struct {
	registry map[*dom.Node]map[string]*muxEntry
	nextID   int
	logger   *slog.Logger
}

// muxEntry tracks the logical handler set and the single physical
// listener for one (element, event type) pair.
type muxEntry struct {
	handlers []*Registration // insertion order
	physical *dom.Listener
}

// NewMultiplexer creates an empty multiplexer.
func NewMultiplexer() *Multiplexer {
	return &Multiplexer{
		registry: make(map[*dom.Node]map[string]*muxEntry),
		logger:   slog.Default().With("component", "events"),
	}
}

// Attach registers handler for eventType on el and returns its
// registration handle. The first handler for a pair installs exactly
// one physical listener; subsequent attaches only grow the logical set.
// Every call registers independently, even for the same function value,
// so each caller owns exactly the handler its handle names. Invalid
// input returns nil, which Detach ignores.
func (m *Multiplexer) Attach(el *dom.Node, eventType string, handler Handler) *Registration {
	if el == nil || eventType == "" || handler == nil {
		return nil
	}

	types := m.registry[el]
	if types == nil {
		types = make(map[string]*muxEntry)
		m.registry[el] = types
	}

	entry := types[eventType]
	if entry == nil {
		entry = &muxEntry{}
		types[eventType] = entry
		entry.physical = el.AddListener(eventType, func(e *dom.Event) {
			// Invoke against a snapshot so handlers may attach or
			// detach without affecting the in-flight dispatch.
			snapshot := make([]*Registration, len(entry.handlers))
			copy(snapshot, entry.handlers)
			for _, reg := range snapshot {
				reg.fn(e)
			}
		})
	}

	m.nextID++
	reg := &Registration{id: m.nextID, fn: handler}
	entry.handlers = append(entry.handlers, reg)
	return reg
}

// Detach removes the registered handler from the pair's logical set.
// When the set becomes empty the physical listener is uninstalled and
// the entry dropped; this is the only way stale physical listeners are
// avoided, so every Attach needs a symmetric Detach when an element is
// retired. A nil or unknown registration is a no-op.
func (m *Multiplexer) Detach(el *dom.Node, eventType string, reg *Registration) {
	if el == nil || reg == nil {
		return
	}
	types := m.registry[el]
	if types == nil {
		return
	}
	entry := types[eventType]
	if entry == nil {
		return
	}

	for i, h := range entry.handlers {
		if h == reg {
			entry.handlers = append(entry.handlers[:i], entry.handlers[i+1:]...)
			break
		}
	}

	if len(entry.handlers) == 0 {
		el.RemoveListener(eventType, entry.physical)
		delete(types, eventType)
		if len(types) == 0 {
			delete(m.registry, el)
		}
	}
}

// DetachAll removes every handler for eventType on el.
func (m *Multiplexer) DetachAll(el *dom.Node, eventType string) {
	if el == nil {
		return
	}
	types := m.registry[el]
	if types == nil {
		return
	}
	entry := types[eventType]
	if entry == nil {
		return
	}
	el.RemoveListener(eventType, entry.physical)
	delete(types, eventType)
	if len(types) == 0 {
		delete(m.registry, el)
	}
}

// HandlerCount returns the size of the logical handler set for the pair.
func (m *Multiplexer) HandlerCount(el *dom.Node, eventType string) int {
	if types := m.registry[el]; types != nil {
		if entry := types[eventType]; entry != nil {
			return len(entry.handlers)
		}
	}
	return 0
}
