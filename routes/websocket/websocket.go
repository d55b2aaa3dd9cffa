package websocket

import (
	"DirectChat/controllers"
	"DirectChat/pkg/realtime"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, hub *realtime.Hub) {
	r.GET("/ws", controllers.ChatWS(hub))
}
