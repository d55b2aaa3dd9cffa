package profile

import (
	"DirectChat/controllers"

	"github.com/gin-gonic/gin"
)

// Register registers protected profile routes on supplied router group
// expects the group to already have AuthMiddleware applied
func Register(g *gin.RouterGroup, accounts controllers.Accounts) {
	g.GET("/profile", controllers.Profile(accounts))
}
