// Package linkcheck inspects rendered pages for broken in-page links, missing
// navigation targets and accessibility gaps.
package linkcheck

import "fmt"

// CheckError represents a page that could not be checked
type CheckError struct {
	Message string
	Cause   error
}

func (e *CheckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link check error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link check error: %s", e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}
