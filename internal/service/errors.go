package service

import "errors"

// Recoverable error kinds surfaced to handlers. Each maps to a stable
// machine-readable code in the HTTP layer.
var (
	// ErrDuplicateEmail reports a sign-up against an already registered
	// email.
	ErrDuplicateEmail = errors.New("duplicate_email")

	// ErrInvalidCredentials is the unified sign-in failure for unknown
	// email and wrong password. Callers must not narrow it.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrNotFound reports a missing resource. Checked before ownership, so
	// a requester learns a resource is absent, never whose it is.
	ErrNotFound = errors.New("not_found")

	// ErrNotOwner reports a mutation attempt on a resource owned by a
	// different subject. No write occurs.
	ErrNotOwner = errors.New("ownership_violation")
)

// requireOwner is the ownership rule shared by every mutation on a
// per-user-owned resource: proceed only when the authenticated subject owns
// the resource.
func requireOwner(subject, ownerID int64) error {
	if subject != ownerID {
		return ErrNotOwner
	}
	return nil
}
