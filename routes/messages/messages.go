package messages

import (
	"DirectChat/controllers"

	"github.com/gin-gonic/gin"
)

// Register registers the public history and presence routes.
func Register(r *gin.Engine, history controllers.History, online controllers.OnlineUsers) {
	r.GET("/messages/:user1/:user2", controllers.GetMessages(history))
	r.GET("/users/online", controllers.ListOnline(online))
}
