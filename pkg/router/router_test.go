package router

import (
	"errors"
	"testing"

	"github.com/loom-ui/loom/pkg/events"
)

func TestMatchLiteral(t *testing.T) {
	r := New(nil)
	r.Handle("/todos", nil)

	m, err := r.Match("/todos")
	if err != nil {
		t.Fatal(err)
	}
	if m.Pattern != "/todos" || m.Path != "/todos" {
		t.Errorf("match = %+v", m)
	}

	if _, err := r.Match("/other"); err != ErrRouteNotFound {
		t.Errorf("err = %v, want route not found", err)
	}
}

func TestMatchParam(t *testing.T) {
	r := New(nil)
	r.Handle("/todos/:id", nil)

	m, err := r.Match("/todos/42")
	if err != nil {
		t.Fatal(err)
	}
	if m.Param("id") != "42" {
		t.Errorf("id = %q, want 42", m.Param("id"))
	}

	if _, err := r.Match("/todos"); err == nil {
		t.Error("param segment must not match a shorter path")
	}
	if _, err := r.Match("/todos/42/edit"); err == nil {
		t.Error("pattern must not match a longer path")
	}
}

func TestMatchCatchAll(t *testing.T) {
	r := New(nil)
	r.Handle("/files/*path", nil)

	m, err := r.Match("/files/docs/readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	if m.Param("path") != "docs/readme.txt" {
		t.Errorf("path = %q", m.Param("path"))
	}
}

func TestMatchRoot(t *testing.T) {
	r := New(nil)
	r.Handle("/", nil)

	if _, err := r.Match("/"); err != nil {
		t.Errorf("root should match, got %v", err)
	}
}

func TestMatchOrder(t *testing.T) {
	r := New(nil)
	r.Handle("/todos/new", nil)
	r.Handle("/todos/:id", nil)

	m, _ := r.Match("/todos/new")
	if m.Pattern != "/todos/new" {
		t.Errorf("pattern = %q, want the earlier literal route", m.Pattern)
	}
	m, _ = r.Match("/todos/7")
	if m.Pattern != "/todos/:id" {
		t.Errorf("pattern = %q, want the param route", m.Pattern)
	}
}

func TestMatchCanonicalizes(t *testing.T) {
	r := New(nil)
	r.Handle("/todos/:id", nil)

	m, err := r.Match("/todos//7/")
	if err != nil {
		t.Fatal(err)
	}
	if m.Path != "/todos/7" {
		t.Errorf("Path = %q, want canonical form", m.Path)
	}
}

func TestMatchQuery(t *testing.T) {
	r := New(nil)
	r.Handle("/todos", nil)

	m, err := r.Match("/todos?filter=done&page=2")
	if err != nil {
		t.Fatal(err)
	}
	if m.Query.Get("filter") != "done" || m.Query.Get("page") != "2" {
		t.Errorf("query = %v", m.Query)
	}
}

func TestMatchRejectsEncodedSlashInParam(t *testing.T) {
	r := New(nil)
	r.Handle("/todos/:id", nil)

	if _, err := r.Match("/todos/a%2Fb"); err == nil {
		t.Error("encoded slash in a param segment must not match")
	}
}

func TestCanonicalizeRejections(t *testing.T) {
	bad := []string{
		`/a\b`,
		"/a%00b",
		"/a%GGb",
		"/../secret",
	}
	for _, p := range bad {
		_, _, err := CanonicalizePath(p)
		if err == nil {
			t.Errorf("CanonicalizePath(%q) should fail", p)
			continue
		}
		// Every rejection wraps the shared sentinel so callers can
		// match the whole class at once.
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("CanonicalizePath(%q) = %v, want ErrInvalidPath wrap", p, err)
		}
	}
}

func TestHandleDuplicate(t *testing.T) {
	r := New(nil)
	if err := r.Handle("/todos/:id", nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Handle("/todos/:todoID", nil); err != ErrDuplicateRoute {
		t.Errorf("err = %v, want duplicate route", err)
	}
}

func TestHandleInvalidPattern(t *testing.T) {
	r := New(nil)
	for _, p := range []string{"todos", "/todos/:", "/a/*rest/b", "/a//b"} {
		if err := r.Handle(p, nil); err == nil {
			t.Errorf("Handle(%q) should fail", p)
		}
	}
}

func TestNavigateInvokesHandlerAndBus(t *testing.T) {
	bus := events.NewBus()
	r := New(bus)

	var handled *Match
	r.Handle("/todos/:id", func(m *Match) { handled = m })

	var announced *Match
	bus.On(EventRouteChanged, func(data any) { announced = data.(*Match) })

	if err := r.Navigate("/todos/9"); err != nil {
		t.Fatal(err)
	}
	if handled == nil || handled.Param("id") != "9" {
		t.Errorf("handler match = %+v", handled)
	}
	if announced != handled {
		t.Error("bus should announce the same match")
	}
	if r.Current() != handled {
		t.Error("Current should return the active match")
	}
}

func TestNavigateNotFound(t *testing.T) {
	r := New(nil)
	r.Handle("/todos", nil)

	fallback := false
	r.NotFound(func(m *Match) { fallback = true })

	if err := r.Navigate("/missing"); err != ErrRouteNotFound {
		t.Errorf("err = %v, want route not found", err)
	}
	if !fallback {
		t.Error("NotFound handler did not run")
	}
}

func TestHistoryBackForward(t *testing.T) {
	r := New(nil)
	r.Handle("/", nil)
	r.Handle("/todos/:id", nil)

	r.Navigate("/")
	r.Navigate("/todos/1")
	r.Navigate("/todos/2")

	if !r.Back() || r.Current().Path != "/todos/1" {
		t.Errorf("after Back, current = %+v", r.Current())
	}
	if !r.Back() || r.Current().Path != "/" {
		t.Errorf("after second Back, current = %+v", r.Current())
	}
	if r.Back() {
		t.Error("Back at the start of history should report false")
	}
	if !r.Forward() || r.Current().Path != "/todos/1" {
		t.Errorf("after Forward, current = %+v", r.Current())
	}
}

func TestNavigateTruncatesForwardHistory(t *testing.T) {
	r := New(nil)
	r.Handle("/", nil)
	r.Handle("/a", nil)
	r.Handle("/b", nil)

	r.Navigate("/")
	r.Navigate("/a")
	r.Back()
	r.Navigate("/b")

	if r.Forward() {
		t.Error("navigating from mid-history must drop forward entries")
	}
	if r.HistoryLen() != 2 {
		t.Errorf("history = %d entries, want 2", r.HistoryLen())
	}
}

func TestBuildPath(t *testing.T) {
	got, err := BuildPath("/todos/:id", map[string]string{"id": "5"})
	if err != nil || got != "/todos/5" {
		t.Errorf("BuildPath = %q, %v", got, err)
	}

	if _, err := BuildPath("/todos/:id", nil); err != ErrMissingParam {
		t.Errorf("err = %v, want missing param", err)
	}

	got, err = BuildPath("/", nil)
	if err != nil || got != "/" {
		t.Errorf("BuildPath(/) = %q, %v", got, err)
	}
}
