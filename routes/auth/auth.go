package auth

import (
	"DirectChat/controllers"
	tokenstore "DirectChat/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterPublic registers public auth routes: /register, /login
func RegisterPublic(r *gin.Engine, accounts controllers.Accounts, jwtSecret string) {
	r.POST("/register", controllers.Register(accounts))
	r.POST("/login", controllers.Login(accounts, jwtSecret))
}

// RegisterProtected registers protected auth routes (e.g. logout)
func RegisterProtected(g *gin.RouterGroup, revoked *tokenstore.RevocationList) {
	g.POST("/logout", controllers.Logout(revoked))
}
