// Package state is the reactive bridge between plain records and the
// rendering engine.
//
// A Store intercepts every property write: no-op writes (new value
// equal to current) never notify, effective writes commit and then
// notify synchronously before the write returns. Update batches several
// keys into at most one notification.
//
// A Component binds a Store to one mount point so that every effective
// write runs a render-diff-patch cycle against that container's cached
// tree. Re-entrant writes from event handlers are serialized into one
// trailing re-render rather than nesting.
package state
