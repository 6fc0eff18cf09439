package core

import "errors"

// Sentinel errors for the operation-level failure taxonomy. Every handler
// maps these onto a stable HTTP status at the API boundary; no raw internal
// error detail crosses that boundary.
var (
	// ErrUnauthenticated covers missing, invalid and expired credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAuthUnavailable means the identity provider is not configured;
	// every route that needs it short-circuits with a clear signal instead
	// of crashing.
	ErrAuthUnavailable = errors.New("authentication is not configured")
	// ErrForbidden means a valid identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrAccountDisabled means the account was deactivated.
	ErrAccountDisabled = errors.New("account is deactivated")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest covers malformed input: bad role values, disallowed
	// file types, oversized uploads, missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrServiceUnavailable means the scoring service is unreachable.
	ErrServiceUnavailable = errors.New("classification service unavailable")
	// ErrUpstream means the scoring service answered with a failure.
	ErrUpstream = errors.New("classification service error")
)
