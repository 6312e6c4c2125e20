// Package server implements the Loom development server: static file
// serving with client-route fallback, health and metrics endpoints,
// and a WebSocket live-reload channel.
package server
