/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

HandleWebSocket upgrades the connection, registers it with the
Hub as an Unidentified connection and runs its pumps until it closes.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"dmchat/internal/app/chat"
	"dmchat/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, conn, deps.Config.ClientSendBuffer)

		go client.WritePump()

		logx.Info("WebSocket connection established", "connection_id", client.ID())

		deps.Hub.Open(client)

		client.ReadPump()
	}
}
