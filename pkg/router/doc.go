// Package router is a client-side route table for single-page
// applications: patterns with :param and *rest placeholders, a linear
// navigation history, and route-change announcements on the event bus.
package router
