// Package dom is the in-memory host tree the engine renders into.
//
// It provides the capability surface the reconciliation engine needs
// from a host: element and text node construction, positional child
// mutation, attribute and inline-style access, live properties, low-
// level event listeners with upward bubbling, and CSS-like ancestor
// matching via Closest.
//
// The package is deliberately dumb: no diffing, no multiplexing, no
// reactivity. Those live in pkg/vdom, pkg/events, and pkg/state.
package dom
