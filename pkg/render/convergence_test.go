package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/vdom"
)

// shape is a comparable projection of a host subtree.
type shape struct {
	Kind     dom.NodeKind
	Tag      string
	Text     string
	Attrs    map[string]string
	Styles   map[string]string
	Children []shape
}

func project(n *dom.Node) shape {
	if n == nil {
		return shape{}
	}
	s := shape{Kind: n.Kind(), Tag: n.Tag()}
	if n.Kind() == dom.TextNode {
		s.Text = n.Text()
		return s
	}
	if attrs := n.Attrs(); len(attrs) > 0 {
		s.Attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			s.Attrs[k] = v
		}
	}
	if styles := n.Styles(); len(styles) > 0 {
		s.Styles = make(map[string]string, len(styles))
		for k, v := range styles {
			s.Styles[k] = v
		}
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, project(c))
	}
	return s
}

// Patching render(A) with Diff(A, B) must converge on the same host
// shape as rendering B from scratch.
func TestPatchConvergesOnFreshRender(t *testing.T) {
	pairs := []struct {
		name string
		a, b *vdom.VNode
	}{
		{
			"text change",
			vdom.P("old"),
			vdom.P("new"),
		},
		{
			"attr churn",
			vdom.Div(vdom.Class("a"), vdom.ID("x")),
			vdom.Div(vdom.Class("b"), vdom.TitleAttr("t")),
		},
		{
			"append children",
			vdom.Ul(vdom.Li("a")),
			vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c")),
		},
		{
			"remove children",
			vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c")),
			vdom.Ul(vdom.Li("b")),
		},
		{
			"root tag change",
			vdom.Span("x"),
			vdom.P("x"),
		},
		{
			"nested rewrite",
			vdom.Div(vdom.Class("app"),
				vdom.Ul(vdom.Li(vdom.Key("1"), "one"), vdom.Li(vdom.Key("2"), "two")),
				vdom.P("2 items"),
			),
			vdom.Div(vdom.Class("app busy"),
				vdom.Ul(vdom.Li(vdom.Key("1"), "one"), vdom.Li(vdom.Key("3"), "three")),
				vdom.P("still 2 items"),
			),
		},
		{
			"boolean toggle",
			vdom.Input(vdom.Type("checkbox"), vdom.Checked(true)),
			vdom.Input(vdom.Type("checkbox"), vdom.Checked(false)),
		},
		{
			"kind change",
			vdom.Div(vdom.Text("leaf")),
			vdom.Div(vdom.Span("leaf")),
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			parent := dom.NewElement("div")
			patched := e.Render(tt.a)
			parent.AppendChild(patched)
			patched = e.Apply(patched, vdom.Diff(tt.a, tt.b))

			fresh := New().Render(tt.b)

			if diff := cmp.Diff(project(fresh), project(patched)); diff != "" {
				t.Errorf("patched tree diverged from fresh render (-fresh +patched):\n%s", diff)
			}
		})
	}
}

func TestRepeatedRemountConverges(t *testing.T) {
	e := New()
	container := dom.NewElement("div")

	states := []*vdom.VNode{
		vdom.Ul(),
		vdom.Ul(vdom.Li("a")),
		vdom.Ul(vdom.Li("a"), vdom.Li("b")),
		vdom.Ul(vdom.Li("b")),
		vdom.Ul(),
	}
	for _, v := range states {
		e.AppendTo(v, container)
	}

	fresh := New().Render(states[len(states)-1])
	if diff := cmp.Diff(project(fresh), project(e.MountedNode(container))); diff != "" {
		t.Errorf("mounted tree diverged after remount sequence:\n%s", diff)
	}
}
