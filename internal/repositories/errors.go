package repositories

import "errors"

// Sentinel errors returned by repository implementations. Callers match
// them with errors.Is instead of inspecting driver-specific errors.
var (
	ErrNotFound         = errors.New("repositories: record not found")
	ErrDuplicateEmail   = errors.New("repositories: email already registered")
	ErrDuplicateProfile = errors.New("repositories: user already has a profile")
)
