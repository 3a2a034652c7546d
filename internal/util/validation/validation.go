package validation

import "strings"

// Errors collects field-level validation messages for a mutation. A mutation
// with any collected message performs zero writes.
type Errors struct {
	Messages []string
}

func (e *Errors) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *Errors) Add(message string) {
	e.Messages = append(e.Messages, message)
}

func (e *Errors) HasErrors() bool {
	return len(e.Messages) > 0
}
