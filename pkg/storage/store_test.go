package storage

import (
	"path/filepath"
	"testing"

	"github.com/loom-ui/loom/pkg/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "loom.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadSnapshot(t *testing.T) {
	s := openTestStore(t)

	in := map[string]any{"count": 3, "label": "milk", "done": true}
	if err := s.SaveSnapshot("todo", in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadSnapshot("todo")
	if err != nil {
		t.Fatal(err)
	}
	// JSON round trip turns ints into float64.
	if out["count"] != float64(3) || out["label"] != "milk" || out["done"] != true {
		t.Errorf("loaded = %v", out)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadSnapshot("nope"); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestSaveSkipsUnencodable(t *testing.T) {
	s := openTestStore(t)

	in := map[string]any{"count": 1, "handler": func() {}}
	if err := s.SaveSnapshot("mixed", in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadSnapshot("mixed")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["handler"]; ok {
		t.Error("func values must not be persisted")
	}
	if out["count"] != float64(1) {
		t.Error("encodable values must survive")
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)
	s.SaveSnapshot("x", map[string]any{"a": 1})

	if err := s.DeleteSnapshot("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSnapshot("x"); err == nil {
		t.Error("snapshot still loadable after delete")
	}
	if err := s.DeleteSnapshot("x"); err != nil {
		t.Error("deleting an absent snapshot should be a no-op")
	}
}

func TestListSnapshots(t *testing.T) {
	s := openTestStore(t)
	s.SaveSnapshot("b", map[string]any{})
	s.SaveSnapshot("a", map[string]any{})

	names, err := s.ListSnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v, want [a b] in key order", names)
	}
}

func TestSaveRestoreState(t *testing.T) {
	s := openTestStore(t)

	src := state.NewStore(map[string]any{"filter": "done", "page": 2})
	if err := s.SaveState("ui", src); err != nil {
		t.Fatal(err)
	}

	dst := state.NewStore(nil)
	notified := 0
	dst.Subscribe(func() { notified++ })

	if err := s.RestoreState("ui", dst); err != nil {
		t.Fatal(err)
	}
	if dst.Get("filter") != "done" {
		t.Errorf("filter = %v", dst.Get("filter"))
	}
	if notified != 1 {
		t.Errorf("notified = %d, want one batch notification", notified)
	}
}

func TestOverwriteSnapshot(t *testing.T) {
	s := openTestStore(t)
	s.SaveSnapshot("x", map[string]any{"v": 1})
	s.SaveSnapshot("x", map[string]any{"v": 2})

	out, err := s.LoadSnapshot("x")
	if err != nil {
		t.Fatal(err)
	}
	if out["v"] != float64(2) {
		t.Errorf("v = %v, want latest value", out["v"])
	}
}
