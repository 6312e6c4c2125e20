package dom

// Event is a host event dispatched through the tree. Target is the node
// the event originated on; CurrentTarget is the node whose listener is
// currently running.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node

	// Data carries an arbitrary payload (input text, toggle state, ...).
	Data any

	// Keyboard state, populated for key events.
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	stopped bool
}

// StopPropagation prevents the event from bubbling to ancestors once the
// current node's listeners have run.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener is a handle for one installed low-level listener. The handle,
// not the function value, identifies the listener for removal.
type Listener struct {
	id int
	fn func(*Event)
}

// AddListener installs a low-level listener for the event type and
// returns its handle.
func (n *Node) AddListener(eventType string, fn func(*Event)) *Listener {
	if n.listeners == nil {
		n.listeners = make(map[string][]*Listener)
	}
	n.nextLID++
	l := &Listener{id: n.nextLID, fn: fn}
	n.listeners[eventType] = append(n.listeners[eventType], l)
	return l
}

// RemoveListener uninstalls a previously added listener. Removing an
// unknown handle is a no-op.
func (n *Node) RemoveListener(eventType string, l *Listener) {
	if l == nil || n.listeners == nil {
		return
	}
	list := n.listeners[eventType]
	for i, existing := range list {
		if existing.id == l.id {
			n.listeners[eventType] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(n.listeners[eventType]) == 0 {
		delete(n.listeners, eventType)
	}
}

// ListenerCount returns the number of low-level listeners installed for
// the event type.
func (n *Node) ListenerCount(eventType string) int {
	return len(n.listeners[eventType])
}

// Dispatch fires the event at node n and bubbles it up through the
// ancestor chain until the root or StopPropagation. Listeners at each
// node run against a snapshot, so attaching or detaching from within a
// listener does not affect the in-flight dispatch.
func (n *Node) Dispatch(e *Event) {
	if e == nil || e.Type == "" {
		return
	}
	e.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		if cur.listeners != nil {
			list := cur.listeners[e.Type]
			snapshot := make([]*Listener, len(list))
			copy(snapshot, list)
			e.CurrentTarget = cur
			for _, l := range snapshot {
				l.fn(e)
			}
		}
		if e.stopped {
			return
		}
	}
}
