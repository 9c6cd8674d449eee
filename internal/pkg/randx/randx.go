/*
Package randx generates the opaque identifiers used by the relay.

Connection and frame identifiers are UUID v4 strings.
*/
package randx

import (
	"github.com/google/uuid"
)

// ConnectionID returns a new identifier for a WebSocket connection.
func ConnectionID() string {
	return uuid.NewString()
}

// MessageID generates a UUID v4 string to serve as the identifier of an outbound frame.
func MessageID() string {
	return uuid.New().String()
}

// IsValidID reports whether id is a well-formed UUID as produced by this package.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
