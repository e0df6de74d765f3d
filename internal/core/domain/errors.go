package domain

import "errors"

// ============================================================================
// Probe Errors
// ============================================================================

var (
	ErrProbeRunNotFound = errors.New("probe run not found")
	ErrInvalidProbeRun  = errors.New("invalid probe run id")
	ErrInvalidProbeKind = errors.New("invalid probe kind")
	ErrFetchRow         = errors.New("fetch row failed")
	ErrHashPassword     = errors.New("hash password failed")
)

// ============================================================================
// Database Errors
// ============================================================================

var (
	ErrDatabaseUnavailable = errors.New("database unavailable")
)
