package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/events"
	"github.com/loom-ui/loom/pkg/vdom"
)

// Engine materializes virtual trees into host nodes and patches mounted
// host trees in place. It owns the event multiplexer its handlers are
// attached through and the mount arena of per-container records.
type Engine struct {
	mux    *events.Multiplexer
	mounts map[*dom.Node]*mountRecord

	// attached tracks, per element and event type, the registration of
	// the handler the engine installed from an "on" prop, so the next
	// render can detach it before binding the replacement.
	attached map[*dom.Node]map[string]*events.Registration

	logger *slog.Logger
}

// New creates an engine with its own multiplexer.
func New() *Engine {
	return NewWithMultiplexer(events.NewMultiplexer())
}

// NewWithMultiplexer creates an engine sharing an existing multiplexer.
func NewWithMultiplexer(mux *events.Multiplexer) *Engine {
	return &Engine{
		mux:      mux,
		mounts:   make(map[*dom.Node]*mountRecord),
		attached: make(map[*dom.Node]map[string]*events.Registration),
		logger:   slog.Default().With("component", "render"),
	}
}

// Multiplexer returns the engine's event multiplexer.
func (e *Engine) Multiplexer() *events.Multiplexer { return e.mux }

// Render materializes a virtual node into a fresh host node,
// recursively. Event-handler props are installed through the
// multiplexer as a side effect of attribute application; no handler is
// ever invoked during materialization itself.
func (e *Engine) Render(v *vdom.VNode) *dom.Node {
	if v == nil {
		return nil
	}
	if v.Kind == vdom.KindText {
		return dom.NewText(v.Text)
	}

	el := dom.NewElement(v.Tag)
	for key, val := range v.Props {
		if key == "key" {
			continue
		}
		e.setAttribute(el, key, val)
	}
	for _, child := range v.Children {
		if c := e.Render(child); c != nil {
			el.AppendChild(c)
		}
	}
	return el
}

// setAttribute is the shared attribute setter used by both the
// materializer and the patcher.
func (e *Engine) setAttribute(el *dom.Node, key string, val any) {
	switch {
	case key == "class" || key == "className":
		el.SetAttr("class", toString(val))

	case key == "style":
		if m, ok := val.(map[string]string); ok {
			// Non-destructive merge: untouched style properties persist.
			for prop, v := range m {
				el.SetStyle(prop, v)
			}
			return
		}
		el.SetAttr("style", toString(val))

	case key == "data":
		if m, ok := val.(map[string]string); ok {
			for k, v := range m {
				el.SetAttr("data-"+k, v)
			}
			return
		}
		el.SetAttr(key, toString(val))

	case strings.HasPrefix(key, "on"):
		if h := coerceHandler(val); h != nil {
			e.bindHandler(el, strings.ToLower(key[2:]), h)
			return
		}
		el.SetAttr(key, toString(val))

	default:
		if el.HasProp(key) {
			el.SetProp(key, val)
		}
		// Boolean props carry presence semantics: truthy sets the
		// attribute, falsy leaves it off.
		if b, ok := val.(bool); ok {
			if b {
				el.SetAttr(key, "true")
			} else {
				el.RemoveAttr(key)
			}
			return
		}
		el.SetAttr(key, toString(val))
	}
}

// removeAttribute is the symmetric inverse of setAttribute.
func (e *Engine) removeAttribute(el *dom.Node, key string) {
	switch {
	case key == "class" || key == "className":
		el.RemoveAttr("class")

	case key == "style":
		el.ClearStyle()
		el.RemoveAttr("style")

	case key == "data":
		for k := range el.Attrs() {
			if strings.HasPrefix(k, "data-") {
				el.RemoveAttr(k)
			}
		}

	case strings.HasPrefix(key, "on"):
		e.unbindHandler(el, strings.ToLower(key[2:]))

	default:
		if el.HasProp(key) {
			// Reset the live property to its empty/false sentinel.
			switch el.Prop(key).(type) {
			case bool:
				el.SetProp(key, false)
			default:
				el.SetProp(key, "")
			}
		}
		el.RemoveAttr(key)
	}
}

// bindHandler attaches a handler for the derived event type, detaching
// whatever handler the previous render attached for that type first.
func (e *Engine) bindHandler(el *dom.Node, eventType string, h events.Handler) {
	e.unbindHandler(el, eventType)
	reg := e.mux.Attach(el, eventType, h)
	if reg == nil {
		return
	}
	byType := e.attached[el]
	if byType == nil {
		byType = make(map[string]*events.Registration)
		e.attached[el] = byType
	}
	byType[eventType] = reg
}

// unbindHandler detaches the engine-installed handler for the type, if
// any.
func (e *Engine) unbindHandler(el *dom.Node, eventType string) {
	byType := e.attached[el]
	if byType == nil {
		return
	}
	prev, ok := byType[eventType]
	if !ok {
		return
	}
	e.mux.Detach(el, eventType, prev)
	delete(byType, eventType)
	if len(byType) == 0 {
		delete(e.attached, el)
	}
}

// release detaches every engine-installed handler in the subtree rooted
// at n. Called when a host subtree is replaced or removed so no stale
// physical listeners survive.
func (e *Engine) release(n *dom.Node) {
	if n == nil {
		return
	}
	if byType, ok := e.attached[n]; ok {
		for eventType, reg := range byType {
			e.mux.Detach(n, eventType, reg)
		}
		delete(e.attached, n)
	}
	for _, c := range n.Children() {
		e.release(c)
	}
}

// coerceHandler accepts the function shapes allowed in handler props.
func coerceHandler(val any) events.Handler {
	switch fn := val.(type) {
	case events.Handler:
		return fn
	case func(*dom.Event):
		return fn
	case func():
		return func(*dom.Event) { fn() }
	default:
		return nil
	}
}

// toString converts a prop value to its attribute string form.
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
