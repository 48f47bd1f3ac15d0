package domain

import "errors"

// Failure taxonomy for the core services. Handlers translate these with
// errors.Is; everything else is a generic 500.
var (
	// ErrNotFound: project, membership, or status absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict: duplicate project key or duplicate membership.
	ErrConflict = errors.New("conflict")
	// ErrForbidden: caller is not a member or lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrUserLookup: the user directory returned no result or errored.
	// Resolver-down and user-absent are deliberately indistinguishable here.
	ErrUserLookup = errors.New("user not found")
	// ErrInvalid: malformed input (bad uuid, unknown role, missing field).
	ErrInvalid = errors.New("invalid input")
)
