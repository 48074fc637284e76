package services

import "errors"

// Sentinel errors for explicit error handling. Handlers match these with
// errors.Is to pick the HTTP status; the per-cause detail never reaches the
// response body for authentication failures.

var (
	// ErrUserNotFound indicates the requested user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates a unique-constraint violation on username
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates authentication failed; deliberately
	// covers unknown user, inactive, non-admin and wrong password alike
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLastAdmin indicates the mutation would remove the last active admin
	ErrLastAdmin = errors.New("cannot remove the last active admin user")

	// ErrAdminExists indicates bootstrap was attempted after initialization
	ErrAdminExists = errors.New("admin already initialized")

	// ErrNotFound indicates a content entry does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a request failed field validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenInvalid indicates a malformed, tampered or foreign token
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired indicates the token's expiry has passed
	ErrTokenExpired = errors.New("token expired")
)
