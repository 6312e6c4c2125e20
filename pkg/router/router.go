package router

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/loom-ui/loom/pkg/events"
)

// EventRouteChanged is emitted on the router's bus after every
// successful navigation; the payload is the *Match.
const EventRouteChanged = "route:changed"

// Handler runs when its route matches a navigated path.
type Handler func(m *Match)

// Match describes one resolved navigation.
type Match struct {
	// Pattern is the registered pattern that matched.
	Pattern string

	// Path is the canonicalized path that was navigated to.
	Path string

	// Params holds the values captured by :param and *rest segments.
	Params map[string]string

	// Query holds the parsed query string.
	Query url.Values
}

// Param returns one captured parameter, or "" when absent.
func (m *Match) Param(name string) string {
	if m == nil {
		return ""
	}
	return m.Params[name]
}

type segmentKind int

const (
	segLiteral segmentKind = iota
	segParam
	segCatchAll
)

type segment struct {
	kind segmentKind
	// name is the literal text or the parameter name.
	name string
}

type route struct {
	pattern  string
	segments []segment
	handler  Handler
}

// Router is a client-side route table: patterns with :param and *rest
// placeholders mapped to handlers, plus a linear navigation history.
// It is not an HTTP mux; navigation is driven by application code and
// announced on the event bus.
type Router struct {
	routes   []route
	notFound Handler

	bus     *events.Bus
	history []string
	pos     int
	current *Match

	logger *slog.Logger
}

// New creates a router announcing navigations on bus. A nil bus
// disables announcements.
func New(bus *events.Bus) *Router {
	return &Router{
		bus:    bus,
		pos:    -1,
		logger: slog.Default().With("component", "router"),
	}
}

// Handle registers a pattern. Segments starting with ':' capture one
// segment; a final segment starting with '*' captures the rest of the
// path including slashes. Registering a pattern whose shape collides
// with an existing one fails.
func (r *Router) Handle(pattern string, h Handler) error {
	segs, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	for _, existing := range r.routes {
		if sameShape(existing.segments, segs) {
			return ErrDuplicateRoute
		}
	}
	r.routes = append(r.routes, route{pattern: pattern, segments: segs, handler: h})
	return nil
}

// NotFound sets the handler invoked when no pattern matches.
func (r *Router) NotFound(h Handler) { r.notFound = h }

// Match resolves path against the route table without navigating.
// Routes are tried in registration order; the first match wins.
func (r *Router) Match(path string) (*Match, error) {
	canonical, rawQuery, err := CanonicalizePath(path)
	if err != nil {
		return nil, err
	}

	var parts []string
	if canonical != "/" {
		parts = strings.Split(canonical[1:], "/")
	}

	for _, rt := range r.routes {
		params, ok := matchSegments(rt.segments, parts)
		if !ok {
			continue
		}
		query, _ := url.ParseQuery(rawQuery)
		return &Match{
			Pattern: rt.pattern,
			Path:    canonical,
			Params:  params,
			Query:   query,
		}, nil
	}
	return nil, ErrRouteNotFound
}

// Navigate resolves path, records it in the history, invokes the
// matched handler, and emits EventRouteChanged. An unmatched path runs
// the NotFound handler (if set) and still returns ErrRouteNotFound.
func (r *Router) Navigate(path string) error {
	m, err := r.Match(path)
	if err != nil {
		if err == ErrRouteNotFound && r.notFound != nil {
			r.notFound(&Match{Path: path})
		}
		r.logger.Warn("navigation failed", "path", path, "error", err)
		return err
	}

	// Navigating from the middle of the history truncates the forward
	// entries, like a browser does.
	r.history = append(r.history[:r.pos+1], m.Path)
	r.pos = len(r.history) - 1

	r.apply(m)
	return nil
}

// Back re-navigates to the previous history entry. It reports whether
// a move happened.
func (r *Router) Back() bool {
	if r.pos <= 0 {
		return false
	}
	r.pos--
	r.replay(r.history[r.pos])
	return true
}

// Forward re-navigates to the next history entry.
func (r *Router) Forward() bool {
	if r.pos < 0 || r.pos >= len(r.history)-1 {
		return false
	}
	r.pos++
	r.replay(r.history[r.pos])
	return true
}

// Current returns the active match, or nil before the first navigation.
func (r *Router) Current() *Match { return r.current }

// HistoryLen returns the number of history entries.
func (r *Router) HistoryLen() int { return len(r.history) }

func (r *Router) replay(path string) {
	m, err := r.Match(path)
	if err != nil {
		r.logger.Warn("history replay failed", "path", path, "error", err)
		return
	}
	r.apply(m)
}

func (r *Router) apply(m *Match) {
	r.current = m
	for _, rt := range r.routes {
		if rt.pattern == m.Pattern {
			if rt.handler != nil {
				rt.handler(m)
			}
			break
		}
	}
	if r.bus != nil {
		r.bus.Emit(EventRouteChanged, m)
	}
}

// parsePattern splits a pattern into typed segments.
func parsePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, ErrInvalidPattern
	}
	if pattern == "/" {
		return nil, nil
	}

	parts := strings.Split(pattern[1:], "/")
	segs := make([]segment, 0, len(parts))
	for i, p := range parts {
		switch {
		case p == "":
			return nil, ErrInvalidPattern
		case strings.HasPrefix(p, ":"):
			if len(p) == 1 {
				return nil, ErrInvalidPattern
			}
			segs = append(segs, segment{kind: segParam, name: p[1:]})
		case strings.HasPrefix(p, "*"):
			if len(p) == 1 || i != len(parts)-1 {
				return nil, ErrInvalidPattern
			}
			segs = append(segs, segment{kind: segCatchAll, name: p[1:]})
		default:
			segs = append(segs, segment{kind: segLiteral, name: p})
		}
	}
	return segs, nil
}

// sameShape reports whether two patterns would match the same paths.
// Parameter names do not distinguish shapes.
func sameShape(a, b []segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].kind != b[i].kind {
			return false
		}
		if a[i].kind == segLiteral && a[i].name != b[i].name {
			return false
		}
	}
	return true
}

// matchSegments matches path parts against pattern segments, capturing
// parameters.
func matchSegments(segs []segment, parts []string) (map[string]string, bool) {
	params := make(map[string]string)
	for i, seg := range segs {
		switch seg.kind {
		case segCatchAll:
			rest := strings.Join(parts[i:], "/")
			decoded, err := decodeSegment(rest, true)
			if err != nil {
				return nil, false
			}
			params[seg.name] = decoded
			return params, true
		}

		if i >= len(parts) {
			return nil, false
		}
		switch seg.kind {
		case segLiteral:
			if parts[i] != seg.name {
				return nil, false
			}
		case segParam:
			decoded, err := decodeSegment(parts[i], false)
			if err != nil {
				return nil, false
			}
			params[seg.name] = decoded
		}
	}
	return params, len(parts) == len(segs)
}
