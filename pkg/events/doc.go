// Package events multiplexes logical handlers onto host elements and
// provides a named-event bus.
//
// A Multiplexer guarantees at most one physical listener per
// (element, event type) pair regardless of how many logical handlers are
// attached, and uninstalls it the moment the last handler detaches. On
// top of Attach/Detach it offers selector-based delegation, batch
// registration, keyboard shortcuts, and trailing-edge throttling.
//
// The Bus is independent of any element: subscribers are invoked
// synchronously in subscription order, each inside a failure boundary
// so one panicking subscriber cannot starve the rest.
package events
