package interview

import "fmt"

// Error reports an unknown role or a question bank that could not be loaded.
type Error struct {
	Role    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("interview questions for %q: %s: %v", e.Role, e.Message, e.Cause)
	}
	return fmt.Sprintf("interview questions for %q: %s", e.Role, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
