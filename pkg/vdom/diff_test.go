package vdom

import "testing"

func TestDiffBothNil(t *testing.T) {
	op := Diff(nil, nil)
	if op.Kind != OpNone {
		t.Errorf("Kind = %v, want None", op.Kind)
	}
}

func TestDiffPrevNil(t *testing.T) {
	next := Div()
	op := Diff(nil, next)
	if op.Kind != OpReplace {
		t.Fatalf("Kind = %v, want Replace", op.Kind)
	}
	if op.Node != next {
		t.Error("Replace should carry the new node")
	}
}

func TestDiffNextNil(t *testing.T) {
	op := Diff(Div(), nil)
	if op.Kind != OpReplace {
		t.Fatalf("Kind = %v, want Replace", op.Kind)
	}
	if op.Node != nil {
		t.Error("Replace with nil node should carry nil (removal)")
	}
}

func TestDiffKindChange(t *testing.T) {
	op := Diff(Text("Hello"), Div("Hello"))
	if op.Kind != OpReplace {
		t.Errorf("Kind = %v, want Replace", op.Kind)
	}
}

func TestDiffTextChange(t *testing.T) {
	op := Diff(Text("Hello"), Text("World"))
	if op.Kind != OpText {
		t.Fatalf("Kind = %v, want Text", op.Kind)
	}
	if op.Text != "World" {
		t.Errorf("Text = %q, want World", op.Text)
	}
}

func TestDiffTextUnchanged(t *testing.T) {
	op := Diff(Text("Hello"), Text("Hello"))
	if op.Kind != OpNone {
		t.Errorf("Kind = %v, want None", op.Kind)
	}
}

func TestDiffTagChangeForcesReplace(t *testing.T) {
	// Identical attributes and children must not prevent the replace.
	prev := Div(Class("card"), Span("x"))
	next := El("section", Class("card"), Span("x"))

	op := Diff(prev, next)
	if op.Kind != OpReplace {
		t.Fatalf("Kind = %v, want Replace", op.Kind)
	}
	if op.Node != next {
		t.Error("Replace should carry the new node")
	}
}

func TestDiffIdentity(t *testing.T) {
	trees := []*VNode{
		Div(),
		Text("hello"),
		Div(Class("a"), ID("b")),
		Ul(Li(Key("1"), "one"), Li(Key("2"), "two")),
		Div(StyleMap(map[string]string{"color": "red"}), Span("inner"), Text("tail")),
		Input(Type("checkbox"), Checked(true)),
	}
	for i, v := range trees {
		if op := Diff(v, v); op.Kind != OpNone {
			t.Errorf("tree %d: Diff(v, v).Kind = %v, want None", i, op.Kind)
		}
	}
}

func TestDiffEquivalentTrees(t *testing.T) {
	build := func() *VNode {
		return Div(Class("todo"),
			Ul(Li(Key("a"), "one"), Li(Key("b"), "two")),
		)
	}
	if op := Diff(build(), build()); op.Kind != OpNone {
		t.Errorf("Kind = %v, want None for structurally identical trees", op.Kind)
	}
}

func TestDiffAttrsAdded(t *testing.T) {
	patches := DiffAttrs(Props{}, Props{"id": "x"})
	if len(patches) != 1 {
		t.Fatalf("len = %d, want 1", len(patches))
	}
	if patches[0].Remove || patches[0].Key != "id" || patches[0].Value != "x" {
		t.Errorf("unexpected patch %+v", patches[0])
	}
}

func TestDiffAttrsRemoved(t *testing.T) {
	patches := DiffAttrs(Props{"id": "x"}, Props{})
	if len(patches) != 1 {
		t.Fatalf("len = %d, want 1", len(patches))
	}
	if !patches[0].Remove || patches[0].Key != "id" {
		t.Errorf("unexpected patch %+v", patches[0])
	}
}

func TestDiffAttrsChanged(t *testing.T) {
	patches := DiffAttrs(Props{"class": "a"}, Props{"class": "b"})
	if len(patches) != 1 {
		t.Fatalf("len = %d, want 1", len(patches))
	}
	if patches[0].Remove || patches[0].Value != "b" {
		t.Errorf("unexpected patch %+v", patches[0])
	}
}

func TestDiffAttrsEqualSkipped(t *testing.T) {
	patches := DiffAttrs(
		Props{"class": "a", "id": "x"},
		Props{"class": "a", "id": "x"},
	)
	if len(patches) != 0 {
		t.Errorf("len = %d, want 0", len(patches))
	}
}

func TestDiffAttrsKeyIgnored(t *testing.T) {
	patches := DiffAttrs(Props{"key": "1"}, Props{"key": "2"})
	if len(patches) != 0 {
		t.Errorf("reconciliation key must not produce attribute patches, got %+v", patches)
	}
}

func TestDiffAttrsBooleanFalseRemoves(t *testing.T) {
	for _, name := range []string{"checked", "disabled", "selected"} {
		patches := DiffAttrs(Props{name: true}, Props{name: false})
		if len(patches) != 1 {
			t.Fatalf("%s: len = %d, want 1", name, len(patches))
		}
		if !patches[0].Remove {
			t.Errorf("%s: falsy boolean attribute must emit Remove, got Set %v", name, patches[0].Value)
		}
	}
}

func TestDiffAttrsBooleanFalseAddedStillRemoves(t *testing.T) {
	patches := DiffAttrs(Props{}, Props{"checked": false})
	if len(patches) != 1 || !patches[0].Remove {
		t.Errorf("newly added falsy boolean must emit Remove, got %+v", patches)
	}
}

func TestDiffAttrsMapValues(t *testing.T) {
	prev := Props{"style": map[string]string{"color": "red"}}
	next := Props{"style": map[string]string{"color": "red"}}
	if patches := DiffAttrs(prev, next); len(patches) != 0 {
		t.Errorf("equal style maps should not patch, got %+v", patches)
	}

	next = Props{"style": map[string]string{"color": "blue"}}
	if patches := DiffAttrs(prev, next); len(patches) != 1 {
		t.Errorf("changed style map should patch once, got %+v", patches)
	}
}

func TestDiffAttrsHandlersAlwaysReset(t *testing.T) {
	// Closures from a single literal share one code pointer, so handler
	// props must always re-set; anything identity-based would mistake a
	// fresh closure with new captured state for the stale one.
	mint := func(n *int) func() { return func() { *n++ } }
	a, b := 0, 0
	if patches := DiffAttrs(Props{"onclick": mint(&a)}, Props{"onclick": mint(&b)}); len(patches) != 1 {
		t.Errorf("closures from one literal must re-set, got %+v", patches)
	}

	fn := func() {}
	if patches := DiffAttrs(Props{"onclick": fn}, Props{"onclick": fn}); len(patches) != 1 {
		t.Errorf("handler props are never equal, got %+v", patches)
	}
}

func TestDiffChildrenAppend(t *testing.T) {
	prev := []*VNode{Li("a")}
	next := []*VNode{Li("a"), Li("b")}

	patches := DiffChildren(prev, next)
	if len(patches) != 2 {
		t.Fatalf("len = %d, want 2", len(patches))
	}
	if patches[0].Kind != ChildUpdate || patches[0].Op.Kind != OpNone {
		t.Errorf("patch 0 = %+v, want no-op update", patches[0])
	}
	if patches[1].Kind != ChildAppend {
		t.Errorf("patch 1 kind = %v, want Append", patches[1].Kind)
	}
}

func TestDiffChildrenRemove(t *testing.T) {
	prev := []*VNode{Li("a"), Li("b"), Li("c")}
	next := []*VNode{Li("a")}

	patches := DiffChildren(prev, next)
	if len(patches) != 3 {
		t.Fatalf("len = %d, want 3", len(patches))
	}
	if patches[1].Kind != ChildRemove || patches[1].Index != 1 {
		t.Errorf("patch 1 = %+v, want Remove at 1", patches[1])
	}
	if patches[2].Kind != ChildRemove || patches[2].Index != 2 {
		t.Errorf("patch 2 = %+v, want Remove at 2", patches[2])
	}
}

func TestDiffChildrenKeyedOverride(t *testing.T) {
	// Equal tags, differing keys: replace unconditionally, never a
	// recursive update.
	prev := []*VNode{Li(Key("a"), "one")}
	next := []*VNode{Li(Key("b"), "one")}

	patches := DiffChildren(prev, next)
	if len(patches) != 1 {
		t.Fatalf("len = %d, want 1", len(patches))
	}
	if patches[0].Kind != ChildUpdate || patches[0].Op.Kind != OpReplace {
		t.Errorf("key mismatch must force Replace, got %+v", patches[0])
	}
}

func TestDiffChildrenKeyOnOneSideOnly(t *testing.T) {
	prev := []*VNode{Li("one")}
	next := []*VNode{Li(Key("b"), "one")}

	patches := DiffChildren(prev, next)
	if patches[0].Op.Kind != OpReplace {
		t.Errorf("key appearing on one side must force Replace, got %+v", patches[0])
	}
}

func TestDiffChildrenPositional(t *testing.T) {
	// Unkeyed children shifting position churn positionally; this is
	// documented behavior, not a defect.
	prev := []*VNode{Li("a"), Li("b")}
	next := []*VNode{Li("b"), Li("a")}

	patches := DiffChildren(prev, next)
	if len(patches) != 2 {
		t.Fatalf("len = %d, want 2", len(patches))
	}
	for i, p := range patches {
		if p.Kind != ChildUpdate || p.Op.Kind == OpNone {
			t.Errorf("patch %d = %+v, want a non-trivial positional update", i, p)
		}
	}
}

func TestDiffUpdateCombined(t *testing.T) {
	prev := Ul(Class("list"), Li("a"))
	next := Ul(Class("list wide"), Li("a"), Li("b"))

	op := Diff(prev, next)
	if op.Kind != OpUpdate {
		t.Fatalf("Kind = %v, want Update", op.Kind)
	}
	if len(op.Attrs) != 1 {
		t.Errorf("attrs = %+v, want one class change", op.Attrs)
	}
	appends := 0
	for _, p := range op.Children {
		if p.Kind == ChildAppend {
			appends++
		}
	}
	if appends != 1 {
		t.Errorf("appends = %d, want 1", appends)
	}
}

func TestDiffIsPureOnInputs(t *testing.T) {
	prev := Ul(Li(Key("a"), "one"))
	next := Ul(Li(Key("b"), "two"))
	before := len(prev.Children)

	Diff(prev, next)
	Diff(prev, next)

	if len(prev.Children) != before {
		t.Error("Diff must not mutate its inputs")
	}
}
