package outbound

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve to an active row.
	// Repositories never distinguish "never existed" from "soft-deleted".
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned when an active user already holds the email.
	ErrEmailExists = errors.New("email already exists")
)
