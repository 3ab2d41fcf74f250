// Package common defines sentinel errors and small helpers shared by the
// storage, service and console layers of polyglot. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")

	// Service-level errors.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrValidation       = errors.New("validation error")

	// Auth errors. The message is the same for unknown users and wrong
	// passwords.
	ErrAuthFailed = errors.New("authentication failed")

	// Lesson errors.
	ErrLessonNotComplete = errors.New("lesson not complete")
)
