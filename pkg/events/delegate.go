package events

import (
	"strings"

	"github.com/loom-ui/loom/pkg/dom"
)

// DelegatedHandler receives the element matched by the delegation
// selector along with the original event.
type DelegatedHandler func(matched *dom.Node, e *dom.Event)

// Delegate installs one multiplexed listener on container that serves a
// dynamic set of matching descendants. On each event it walks up from
// the event's origin to the nearest ancestor (inclusive) matching
// selector and still contained in container, and invokes handler with
// that element.
//
// A nil container logs a warning and returns an inert cleanup; Delegate
// never panics. The returned cleanup detaches exactly this delegation
// and is safe to call more than once.
func (m *Multiplexer) Delegate(eventType string, container *dom.Node, selector string, handler DelegatedHandler) func() {
	if container == nil {
		m.logger.Warn("delegate: missing container", "event", eventType, "selector", selector)
		return func() {}
	}
	if eventType == "" || selector == "" || handler == nil {
		m.logger.Warn("delegate: incomplete registration", "event", eventType, "selector", selector)
		return func() {}
	}

	wrapped := func(e *dom.Event) {
		matched := e.Target.Closest(selector)
		if matched == nil || !container.Contains(matched) {
			return
		}
		handler(matched, e)
	}

	reg := m.Attach(container, eventType, wrapped)

	detached := false
	return func() {
		if detached {
			return
		}
		detached = true
		m.Detach(container, eventType, reg)
	}
}

// RegisterEvents is the batch form of Delegate. Each key is an
// "eventType:selector" pair; both halves are trimmed, and malformed keys
// (missing either half) are silently skipped. The returned cleanup
// detaches all registered delegations.
func (m *Multiplexer) RegisterEvents(container *dom.Node, eventMap map[string]DelegatedHandler) func() {
	var cleanups []func()
	for key, handler := range eventMap {
		eventType, selector, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		eventType = strings.TrimSpace(eventType)
		selector = strings.TrimSpace(selector)
		if eventType == "" || selector == "" {
			continue
		}
		cleanups = append(cleanups, m.Delegate(eventType, container, selector, handler))
	}
	return func() {
		for _, fn := range cleanups {
			fn()
		}
	}
}
