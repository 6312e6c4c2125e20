// Package storage persists state snapshots across sessions, backed by
// a local bbolt file.
package storage
