/*
Package errs provides custom error types and application-level error code constants.

These codes identify protocol and presence failures both inside the server and in the
frames sent back to WebSocket clients.
*/
package errs

// 1xxx: Request and Frame Handling Errors
const (
	// ErrInvalidParams indicates that request or payload validation failed.
	ErrInvalidParams = 1001

	// ErrInvalidJSONFormat indicates that an inbound frame or body was not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrRateLimitExceeded indicates that the connection rate for the caller's IP was exceeded.
	ErrRateLimitExceeded = 1007

	// ErrUnsupportedMessageType indicates that an inbound frame carried an unknown type.
	ErrUnsupportedMessageType = 1008
)

// 2xxx: Presence Errors
const (
	// ErrUsernameTaken indicates that another active connection already holds the username.
	ErrUsernameTaken = 2001

	// ErrInvalidUsername indicates that the username was empty after trimming.
	ErrInvalidUsername = 2002

	// ErrAlreadyIdentified indicates a claim from a connection that already owns a username.
	ErrAlreadyIdentified = 2003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
