package handlers

import "time"

const (
	ClientCookieName         = "vd_client"
	CurrentLibraryCookieName = "current_library"

	// CurrentLibraryTTL is how long an anonymous library choice is remembered
	CurrentLibraryTTL = 30 * 24 * time.Hour

	ErrInvalidRequest      = "Invalid request body"
	ErrInvalidCSRFToken    = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many requests. Please slow down."
	ErrInternalServerError = "Internal server error"
	ErrUpstreamUnavailable = "Library service unavailable"
	ErrNoLibrarySelected   = "No library selected"
)
