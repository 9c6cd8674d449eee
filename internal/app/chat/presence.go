package chat

import (
	"dmchat/internal/pkg/errs"
)

// handleOpen registers a connection in the Unidentified state and tells it its ID.
func (h *Hub) handleOpen(sink Sink) {
	connID := sink.ID()

	if _, exists := h.sessions[connID]; exists {
		h.logger.Warn().Str("connection_id", connID).Msg("Connection already open. Ignoring duplicate open.")
		return
	}

	s := &session{sink: sink, state: stateUnidentified}
	h.sessions[connID] = s

	h.logger.Info().
		Str("connection_id", connID).
		Int("open_connections", len(h.sessions)).
		Msg("Connection opened.")

	msg, err := NewMessage(TypeConnected, ConnectedPayload{ConnectionID: connID})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build CONNECTED message.")
		return
	}
	h.deliver(s, msg)
}

// handleClaim moves a connection from Unidentified to Identified when the username
// is free, and announces the new user to every other identified connection.
func (h *Hub) handleClaim(connID string, rawUsername string) {
	s, ok := h.sessions[connID]
	if !ok {
		h.logger.Debug().Str("connection_id", connID).Msg("Claim from closed connection ignored.")
		return
	}

	newUser, claimErr := h.registry.Add(connID, rawUsername)
	if claimErr != nil {
		h.logger.Info().
			Str("connection_id", connID).
			Str("username", rawUsername).
			Int("code", claimErr.Code).
			Msg("Username claim rejected.")

		h.rejectClaim(s, claimErr)
		return
	}

	s.state = stateIdentified
	allUsers := h.registry.ListAll()

	h.logger.Info().
		Str("connection_id", connID).
		Str("username", newUser.Username).
		Int("total_users", len(allUsers)).
		Msg("Username claimed.")

	accepted, err := NewMessage(TypeClaimAccepted, ClaimAcceptedPayload{User: newUser, AllUsers: allUsers})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build CLAIM_ACCEPTED message.")
	} else {
		h.deliver(s, accepted)
	}

	added, err := NewMessage(TypePresenceAdded, PresenceAddedPayload{NewUser: newUser, AllUsers: allUsers})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build PRESENCE_ADDED message.")
		return
	}
	h.broadcastExcept(added, connID)
}

func (h *Hub) rejectClaim(s *session, claimErr *errs.CustomError) {
	msg, err := NewMessage(TypeClaimRejected, ClaimRejectedPayload{
		Code:   claimErr.Code,
		Reason: claimErr.Message,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build CLAIM_REJECTED message.")
		return
	}
	h.deliver(s, msg)
}

// handleClose moves a connection to Closed. An identified user is removed from the
// registry and its departure is broadcast. Unknown or already closed IDs are a no-op.
func (h *Hub) handleClose(connID string) {
	s, ok := h.sessions[connID]
	if !ok {
		return
	}

	delete(h.sessions, connID)
	s.sink.Close()

	departed, removed := h.registry.Remove(connID)

	h.logger.Info().
		Str("connection_id", connID).
		Bool("was_identified", removed).
		Int("open_connections", len(h.sessions)).
		Msg("Connection closed.")

	if !removed {
		return
	}

	msg, err := NewMessage(TypePresenceRemoved, PresenceRemovedPayload{
		User:     departed,
		AllUsers: h.registry.ListAll(),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build PRESENCE_REMOVED message.")
		return
	}
	h.broadcastExcept(msg, connID)
}

// handleError sends an ERROR frame to an open connection.
func (h *Hub) handleError(connID string, customErr *errs.CustomError) {
	s, ok := h.sessions[connID]
	if !ok {
		return
	}

	msg, err := NewMessage(TypeError, ErrorPayload{Code: customErr.Code, Message: customErr.Message})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build ERROR message.")
		return
	}
	h.deliver(s, msg)
}
