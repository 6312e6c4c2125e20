// Package errors provides structured errors with codes, suggestions,
// and terminal-friendly formatting for the Loom toolchain.
package errors
