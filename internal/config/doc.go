// Package config loads and validates loom.json project configuration.
package config
