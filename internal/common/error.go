// Package common defines shared constants and sentinel errors used across
// the ArcaneDex client and the mock server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Session errors.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNotAdmin     = errors.New("admin role required")

	// Catalog errors.
	ErrBusy        = errors.New("fetch already in progress")
	ErrInvalidPage = errors.New("invalid page request")
	ErrOffline     = errors.New("unavailable while offline")

	// Validation errors.
	ErrWeakPassword   = errors.New("password must have at least 8 characters and one special character")
	ErrEmptyField     = errors.New("required field is empty")
	ErrNotImageRef    = errors.New("invalid image reference")
	ErrTermsNotAccept = errors.New("terms of service not accepted")
)
