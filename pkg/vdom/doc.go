// Package vdom provides the virtual node model and the differ for Loom.
//
// A VNode tree is a lightweight, immutable-by-convention description of
// a UI subtree. The Diff function compares two trees and produces an Op,
// a minimal declarative description of the mutation needed to bring a
// host node materialized from the old tree in sync with the new one.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P("Content"),
//	    OnClick(handler),
//	)
//
// # Diffing
//
// Diff is pure and total: it never panics and returns an Op for any pair
// of inputs. Children are matched positionally; an explicit Key is the
// only way to opt out of positional reuse, and a key mismatch forces a
// replace even when tags are equal. Diff(v, v) is always a no-op.
//
// Applying Ops to a live host tree is the responsibility of package
// render; this package knows nothing about host nodes.
package vdom
