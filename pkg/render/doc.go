// Package render materializes virtual trees into host nodes and applies
// diff ops to mounted host trees in place.
//
// The Engine ties the three moving parts together: the materializer
// (Render), the patcher (Apply), and the mount arena (AppendTo), which
// caches the last virtual tree per container as the diff baseline. One
// shared attribute setter/remover serves both Render and Apply, so
// class, style-map, data-map, live-property, and event-handler
// attributes behave identically on first render and on patch.
//
// Handlers are attached and detached exclusively through the engine's
// events.Multiplexer; replacing or removing a host subtree releases all
// handlers the engine installed in it, so no stale physical listeners
// outlive their elements.
package render
