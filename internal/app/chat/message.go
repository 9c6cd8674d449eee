/*
Package chat contains the presence and relay logic of the server: the connection
registry, the hub event loop that serializes every connection event, and the
WebSocket client pumps.

This file defines the frame envelope and the payload of every frame type.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"dmchat/internal/app/user"
	"dmchat/internal/pkg/randx"
)

// MessageType identifies the kind of a frame exchanged over a connection.
type MessageType string

// Client → server.
const (
	TypeClaimUsername MessageType = "CLAIM_USERNAME"
	TypeSendMessage   MessageType = "SEND_MESSAGE"
)

// Server → client.
const (
	TypeConnected       MessageType = "CONNECTED"
	TypeClaimAccepted   MessageType = "CLAIM_ACCEPTED"
	TypeClaimRejected   MessageType = "CLAIM_REJECTED"
	TypePresenceAdded   MessageType = "PRESENCE_ADDED"
	TypePresenceRemoved MessageType = "PRESENCE_REMOVED"
	TypeMessageReceived MessageType = "MESSAGE_RECEIVED"
	TypeError           MessageType = "ERROR"
)

// Message is the envelope of every outbound frame.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// InboundMessage is the envelope of a frame received from a client.
type InboundMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage wraps payload in an envelope with a fresh ID and the current time.
func NewMessage(msgType MessageType, payload any) (Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}

	return Message{
		ID:        randx.MessageID(),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payloadBytes,
	}, nil
}

// ClaimUsernamePayload is sent by a client to join under a username.
type ClaimUsernamePayload struct {
	Username string `json:"username"`
}

// SendMessagePayload asks the server to deliver body to one connection.
type SendMessagePayload struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Body        string `json:"body"`
}

// ConnectedPayload tells a client the identifier assigned to its connection.
type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

// ClaimAcceptedPayload is sent to the claimant after a successful claim.
type ClaimAcceptedPayload struct {
	User     user.User   `json:"user"`
	AllUsers []user.User `json:"allUsers"`
}

// ClaimRejectedPayload is sent to the claimant when a claim fails.
type ClaimRejectedPayload struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// PresenceAddedPayload announces a newly identified user to everyone else.
type PresenceAddedPayload struct {
	NewUser  user.User   `json:"newUser"`
	AllUsers []user.User `json:"allUsers"`
}

// PresenceRemovedPayload announces that an identified user disconnected.
type PresenceRemovedPayload struct {
	User     user.User   `json:"user"`
	AllUsers []user.User `json:"allUsers"`
}

// MessageReceivedPayload carries a relayed message to its recipient.
type MessageReceivedPayload struct {
	SenderID string `json:"senderId"`
	Body     string `json:"body"`
}

// ErrorPayload reports a malformed or unsupported frame.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
