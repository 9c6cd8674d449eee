/*
Package chat contains the presence and relay logic of the server.

This file defines the Client struct, the WebSocket transport of one connection. It runs
the read and write pumps and turns inbound frames into Hub events.
*/
package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/logx"
	"dmchat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 64 * 1024
)

var validate = validator.New()

// Client is one WebSocket connection. It implements Sink for the Hub.
type Client struct {
	// id is the opaque connection identifier handed to the hub.
	id string

	// hub receives every event read from the connection.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// buffered queue of frames waiting to be written.
	send chan []byte

	closeOnce sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient wraps an upgraded connection with a fresh connection ID.
func NewClient(hub *Hub, wsConn *websocket.Conn, sendBuffer int) *Client {
	id := randx.ConnectionID()

	return &Client{
		id:     id,
		hub:    hub,
		conn:   wsConn,
		send:   make(chan []byte, sendBuffer),
		logger: logx.Logger().With().Str("connection_id", id).Logger(),
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Send queues data for the write pump without blocking.
func (c *Client) Send(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close closes the outbound queue; the write pump then sends a close frame and exits.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump reads frames until the connection fails or times out, then tells the
// hub the connection is gone.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		c.processInboundMessage(messageBytes)
	}
}

func (c *Client) cleanupOnDisconnect() {
	c.logger.Debug().Msg("Client connection cleanup starting.")

	c.hub.Disconnect(c.id)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInboundMessage decodes one frame and forwards it to the hub.
func (c *Client) processInboundMessage(messageBytes []byte) {
	var inbound InboundMessage
	if err := json.Unmarshal(messageBytes, &inbound); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		c.hub.ReportError(c.id, errs.NewError(errs.ErrInvalidJSONFormat))
		return
	}

	switch inbound.Type {
	case TypeClaimUsername:
		var payload ClaimUsernamePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid CLAIM_USERNAME payload")
			c.hub.ReportError(c.id, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.Claim(c.id, payload.Username)

	case TypeSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid SEND_MESSAGE payload")
			c.hub.ReportError(c.id, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if err := validate.Struct(payload); err != nil {
			c.logger.Warn().Err(err).Msg("SEND_MESSAGE payload failed validation")
			c.hub.ReportError(c.id, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.Send(c.id, payload.RecipientID, payload.Body)

	default:
		c.logger.Warn().Str("msg_type", string(inbound.Type)).Msg("Client sent unsupported message type")
		c.hub.ReportError(c.id, errs.NewError(errs.ErrUnsupportedMessageType, string(inbound.Type)))
	}
}

// WritePump writes queued frames and periodic pings until the queue is closed or a
// write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage returns false when the write pump should stop.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
