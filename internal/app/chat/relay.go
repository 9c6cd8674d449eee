package chat

// relay forwards body from senderID to the single connection recipientID.
// Delivery is best-effort: an unknown, unidentified or closed recipient means the
// message is dropped without telling the sender. Nothing is stored or retried.
func (h *Hub) relay(senderID string, recipientID string, body string) {
	if _, open := h.sessions[senderID]; !open {
		h.logger.Debug().Str("sender_id", senderID).Msg("Message from closed connection ignored.")
		return
	}

	if _, ok := h.registry.FindByConnectionID(recipientID); !ok {
		h.logger.Debug().
			Str("sender_id", senderID).
			Str("recipient_id", recipientID).
			Msg("Recipient unavailable. Message dropped.")
		return
	}

	target, ok := h.sessions[recipientID]
	if !ok {
		return
	}

	msg, err := NewMessage(TypeMessageReceived, MessageReceivedPayload{SenderID: senderID, Body: body})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build MESSAGE_RECEIVED message.")
		return
	}

	h.deliver(target, msg)
}
