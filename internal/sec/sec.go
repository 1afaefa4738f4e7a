// Package sec provides the credential and token primitives for the catalog
// API and CLI.
//
// # Authentication
//
// Clients authenticate once with a username and password (validated against
// bcrypt hashes in the user store) and receive a signed, time-bounded JWT
// carrying their identity and admin flag. Subsequent requests present the
// token as an Authorization bearer header.
//
// # Components
//
//   - [TokenIssuer]: issues and verifies HS256 session tokens
//   - [RequireAuth], [RequireAdmin]: echo middleware for protected routes
//   - [GetAuthenticatedClaims], [SetAuthenticatedClaims]: context accessors
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec

// Error is an error type returned by the authentication layer.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

const (
	// ErrMissingToken is returned when a protected route is hit without a
	// bearer token.
	ErrMissingToken Error = "access token required"
	// ErrInvalidToken is returned when a token fails signature or expiry
	// verification.
	ErrInvalidToken Error = "invalid token"
	// ErrAdminRequired is returned when an authenticated, non-admin caller
	// hits an admin-only route.
	ErrAdminRequired Error = "admin access required"
)
