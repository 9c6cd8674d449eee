/*
Package user defines the identity of a chat participant.

A User exists only while its connection is open and has successfully claimed a username.
*/
package user

// User represents a connection that has claimed a username.
// Fields use JSON tags for serialization in WebSocket frames.
type User struct {
	// ID is the opaque identifier of the underlying connection.
	ID string `json:"id"`

	// Username is the trimmed name claimed by the connection, unique among active users.
	Username string `json:"username"`
}
