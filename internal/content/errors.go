// Package content loads, validates and serves the portfolio content records.
package content

import "fmt"

// LoadError represents an error during file I/O or YAML parsing
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	prefix := "load error"
	if e.File != "" {
		prefix = fmt.Sprintf("load error: %s", e.File)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents content that parsed but broke a schema, a
// struct constraint or a collection invariant.
type ValidationError struct {
	File    string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	prefix := "validation error"
	if e.File != "" {
		prefix = fmt.Sprintf("validation error: %s", e.File)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
