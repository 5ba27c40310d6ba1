package main

import (
	"time"

	"github.com/gorilla/websocket"
)

// pingInterval bounds how long a connection sits silent before we probe it.
const pingInterval = 30 * time.Second

// writeLoop drains the client's send channel onto the connection and pings
// whenever the connection has been idle for a full interval, so proxies do
// not drop quiet spectators between moves.
func writeLoop(conn *websocket.Conn, send <-chan []byte) error {
	idle := time.NewTimer(pingInterval)
	defer idle.Stop()
	ping := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		case <-idle.C:
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
		}
		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(pingInterval)
	}
}
