package models

import "fmt"

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// ConfigurationError means the operator has not supplied something required.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// UpstreamError wraps a failed call to the generative-text service.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "upstream AI call failed: " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError wraps a message store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("message store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
