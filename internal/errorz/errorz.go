package errorz

import "errors"

var (
	// ErrNotFound is returned when a short code has no mapping.
	ErrNotFound = errors.New("short code not found")

	// ErrCodeTaken is returned when an insert hits the short_code
	// uniqueness constraint. The caller regenerates and retries.
	ErrCodeTaken = errors.New("short code already taken")

	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
