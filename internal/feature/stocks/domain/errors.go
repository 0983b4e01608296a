// Package domain defines domain-level types and errors for the stocks feature.
package domain

import "strings"

// Violation describes a single failed constraint on an input field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every constraint violation found on an
// input. It is the only modeled domain error of the stock service;
// persistence failures pass through untouched.
type ValidationError struct {
	Violations []Violation
}

// Error formats the violations as "Validation failed. Details:
// [field: message], [field: message]".
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Validation failed. Details: ")
	for i, v := range e.Violations {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		b.WriteString(v.Field)
		b.WriteString(": ")
		b.WriteString(v.Message)
		b.WriteString("]")
	}
	return b.String()
}
