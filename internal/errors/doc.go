// Package apperrors defines structured application error types, allowing a
// clear distinction between error classes (configuration, validation) and
// carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapped errors support errors.Is() and errors.As().
package apperrors
