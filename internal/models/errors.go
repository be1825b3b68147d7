package models

import "errors"

// Domain errors shared between repositories, services and handlers.
// Handlers match them with errors.Is and translate them to HTTP statuses.
var (
	// ErrUsernameTaken is returned when a create or rename would violate
	// username uniqueness.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when a referenced user id or username
	// does not resolve to a record.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on login for both an unknown
	// username and a wrong password, so the response cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for malformed, badly signed or expired
	// bearer tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidRole is returned when a role outside the {admin, user}
	// allow-list reaches the service layer.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidUsername is returned when a username is empty after
	// trimming surrounding whitespace.
	ErrInvalidUsername = errors.New("invalid username")
)
