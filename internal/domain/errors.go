package domain

import "errors"

// Storage-agnostic sentinels. Every repository implementation returns these so
// services can map them without knowing the backend.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
