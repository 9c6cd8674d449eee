/*
Package chat contains the presence and relay logic of the server.

This file defines the Hub, which owns the table of open connections and processes
every connection event (open, claim, send, disconnect) one at a time on a single
goroutine. Claims are therefore resolved in arrival order: first writer wins.
*/
package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"dmchat/internal/app/user"
	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/logx"
)

const eventChannelBuffer = 1024

// Sink is the transport side of a connection as seen by the hub.
type Sink interface {
	// ID returns the stable identifier of the connection.
	ID() string

	// Send queues a frame without blocking. It returns false if the frame was dropped.
	Send(data []byte) bool

	// Close ends the outbound side of the connection. The hub calls it at most once.
	Close()
}

type connState int

const (
	stateUnidentified connState = iota
	stateIdentified
)

// session is the hub's view of one open connection. Closed connections are
// removed from the table, so a missing session means Closed.
type session struct {
	sink  Sink
	state connState
}

type openEvent struct{ sink Sink }

type claimEvent struct {
	connID   string
	username string
}

type sendEvent struct {
	senderID    string
	recipientID string
	body        string
}

type errorEvent struct {
	connID string
	err    *errs.CustomError
}

type closeEvent struct{ connID string }

// Hub serializes presence and relay events against the Registry.
type Hub struct {
	// registry holds the identified users.
	registry *Registry

	// sessions maps connection ID to its session. Only the Run goroutine touches it.
	sessions map[string]*session

	// events is the single queue every connection event goes through.
	events chan any

	// stopChan is closed to stop the Run loop.
	stopChan chan struct{}
	stopOnce sync.Once

	// wg waits for the Run loop to exit during shutdown.
	wg sync.WaitGroup

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its event loop.
func NewHub() *Hub {
	h := newHub()

	h.wg.Add(1)
	go h.Run()

	return h
}

func newHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		sessions: make(map[string]*session),
		events:   make(chan any, eventChannelBuffer),
		stopChan: make(chan struct{}),
		logger:   logx.Component("Hub"),
	}
}

// Registry exposes the user registry for read-only queries.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Users returns the identified users in join order.
func (h *Hub) Users() []user.User {
	return h.registry.ListAll()
}

// Open registers a newly opened connection in the Unidentified state.
func (h *Hub) Open(sink Sink) {
	h.enqueue(openEvent{sink: sink})
}

// Claim asks to identify connID under rawUsername.
func (h *Hub) Claim(connID string, rawUsername string) {
	h.enqueue(claimEvent{connID: connID, username: rawUsername})
}

// Send asks to relay body from senderID to recipientID. It never reports delivery failure.
func (h *Hub) Send(senderID string, recipientID string, body string) {
	h.enqueue(sendEvent{senderID: senderID, recipientID: recipientID, body: body})
}

// ReportError sends an ERROR frame to connID through the event loop.
func (h *Hub) ReportError(connID string, err *errs.CustomError) {
	h.enqueue(errorEvent{connID: connID, err: err})
}

// Disconnect marks connID as closed and removes its user, if any.
func (h *Hub) Disconnect(connID string) {
	h.enqueue(closeEvent{connID: connID})
}

func (h *Hub) enqueue(ev any) {
	select {
	case h.events <- ev:
	case <-h.stopChan:
		h.logger.Debug().Msg("Hub stopped. Event discarded.")
	}
}

// Run processes events until Shutdown is called.
func (h *Hub) Run() {
	defer h.wg.Done()

	h.logger.Info().Msg("Hub event loop started.")

	for {
		select {
		case ev := <-h.events:
			h.dispatch(ev)

		case <-h.stopChan:
			h.closeAll()
			h.logger.Info().Msg("Hub event loop stopped.")
			return
		}
	}
}

func (h *Hub) dispatch(ev any) {
	switch e := ev.(type) {
	case openEvent:
		h.handleOpen(e.sink)
	case claimEvent:
		h.handleClaim(e.connID, e.username)
	case sendEvent:
		h.relay(e.senderID, e.recipientID, e.body)
	case errorEvent:
		h.handleError(e.connID, e.err)
	case closeEvent:
		h.handleClose(e.connID)
	default:
		h.logger.Warn().Interface("event", ev).Msg("Unknown hub event ignored.")
	}
}

// Shutdown stops the event loop and closes every open connection.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down Hub...")

	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	h.wg.Wait()

	h.logger.Info().Msg("Hub shutdown complete.")
}

func (h *Hub) closeAll() {
	for connID, s := range h.sessions {
		s.sink.Close()
		delete(h.sessions, connID)
	}
}

// deliver marshals msg and queues it on a single connection.
func (h *Hub) deliver(s *session, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Error marshaling message.")
		return
	}

	h.push(s, data)
}

func (h *Hub) push(s *session, data []byte) {
	if !s.sink.Send(data) {
		h.logger.Warn().
			Str("connection_id", s.sink.ID()).
			Msg("Client send channel full, dropping message.")
	}
}

// broadcastExcept sends msg to every identified connection other than exceptID,
// in join order.
func (h *Hub) broadcastExcept(msg Message, exceptID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Error marshaling message for broadcast.")
		return
	}

	targets := lo.Filter(h.registry.ListAll(), func(u user.User, _ int) bool {
		return u.ID != exceptID
	})

	for _, target := range targets {
		s, ok := h.sessions[target.ID]
		if !ok || s.state != stateIdentified {
			continue
		}
		h.push(s, data)
	}
}
