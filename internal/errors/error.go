package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryPatch   Category = "patch"
	CategoryEvents  Category = "events"
	CategoryState   Category = "state"
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryStorage Category = "storage"
	CategoryCLI     Category = "cli"
)

// Location represents a source location, usually in a config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// LoomError is a structured error with suggestions and documentation.
type LoomError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (render, patch, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LoomError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LoomError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location to the error.
func (e *LoomError) WithLocation(file string, line, column int) *LoomError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LoomError) WithSuggestion(s string) *LoomError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *LoomError) WithDetail(d string) *LoomError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *LoomError) Wrap(err error) *LoomError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a LoomError from a registered error code.
func New(code string) *LoomError {
	template, ok := registry[code]
	if !ok {
		return &LoomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LoomError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new LoomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *LoomError {
	return &LoomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LoomError.
func FromError(err error, code string) *LoomError {
	if err == nil {
		return nil
	}
	if le, ok := err.(*LoomError); ok {
		return le
	}
	return New(code).Wrap(err)
}
