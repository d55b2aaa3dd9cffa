package controllers

import (
	"context"
	"net/http"

	"DirectChat/models"

	"github.com/gin-gonic/gin"
)

// History is the message store as seen by the HTTP layer.
type History interface {
	History(ctx context.Context, a, b string) ([]models.Message, error)
}

// OnlineUsers lists usernames currently claimed on the chat socket.
type OnlineUsers interface {
	Users() []string
}

// GetMessages returns the conversation between :user1 and :user2, oldest
// first.
func GetMessages(history History) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := history.History(c.Request.Context(), c.Param("user1"), c.Param("user2"))
		if err != nil {
			respondError(c, "history", err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

func ListOnline(online OnlineUsers) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": online.Users()})
	}
}
