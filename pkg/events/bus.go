package events

import "log/slog"

// Bus is a named-event publish/subscribe hub, independent of any host
// element. Subscriptions persist only as long as their unsubscribe has
// not been called.
type Bus struct {
	subs   map[string][]*subscription
	nextID int
	logger *slog.Logger
}

type subscription struct {
	id int
	fn func(data any)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:   make(map[string][]*subscription),
		logger: slog.Default().With("component", "events"),
	}
}

// On subscribes callback to the named event and returns an idempotent
// unsubscribe: calling it twice is a safe no-op.
func (b *Bus) On(name string, callback func(data any)) func() {
	if name == "" || callback == nil {
		return func() {}
	}
	b.nextID++
	sub := &subscription{id: b.nextID, fn: callback}
	b.subs[name] = append(b.subs[name], sub)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		list := b.subs[name]
		for i, s := range list {
			if s.id == sub.id {
				b.subs[name] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(b.subs[name]) == 0 {
			delete(b.subs, name)
		}
	}
}

// Emit invokes every current subscriber synchronously, in subscription
// order. Each callback runs in its own failure boundary: a panicking
// subscriber is logged and does not prevent the rest from running, and
// the failure is never propagated to the emitter.
func (b *Bus) Emit(name string, data any) {
	list := b.subs[name]
	snapshot := make([]*subscription, len(list))
	copy(snapshot, list)
	for _, sub := range snapshot {
		b.safeInvoke(name, sub, data)
	}
}

func (b *Bus) safeInvoke(name string, sub *subscription, data any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber panicked", "event", name, "panic", r)
		}
	}()
	sub.fn(data)
}

// SubscriberCount returns the number of live subscriptions for name.
func (b *Bus) SubscriberCount(name string) int {
	return len(b.subs[name])
}
