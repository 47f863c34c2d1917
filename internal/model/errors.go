package model

import "errors"

// Common errors used across the application
var (
	// Validation errors - caller input violates a precondition
	ErrInvalidName   = errors.New("name must not be empty")
	ErrInvalidID     = errors.New("id must not be empty")
	ErrInvalidStatus = errors.New("status must be pending or active")
	ErrInvalidTheme  = errors.New("theme must be light or dark")
	ErrInvalidMove   = errors.New("move must be cooperate or defect")

	// Absence errors - expected and recoverable
	ErrPlayerNotFound     = errors.New("player not found")
	ErrConnectionNotFound = errors.New("connection not found")

	// Conflict errors
	ErrConnectionExists    = errors.New("connection already exists")
	ErrConnectionNotActive = errors.New("connection is not active")

	// Storage errors
	ErrKeyNotFound    = errors.New("key not found")
	ErrDataCorruption = errors.New("stored data is corrupt")
)
