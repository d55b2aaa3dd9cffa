package controllers

import (
	"log"
	"net/http"

	"DirectChat/pkg/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

// ChatWS upgrades the request and serves the session until it closes.
//
// Client protocol (JSON envelopes):
//
//	-> {event: "join", data: username}
//	-> {event: "privateMessage", data: {to, message, type}}
//	<- {event: "privateMessage", data: {from, message, type}}
//	<- {event: "userList", data: [username...]}
func ChatWS(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		realtime.NewSession(conn, hub, c.ClientIP()).Serve(c.Request.Context())
	}
}
