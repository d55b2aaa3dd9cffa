package routes

import (
	"DirectChat/controllers"
	"DirectChat/middleware"
	"DirectChat/pkg/realtime"
	"DirectChat/pkg/services"
	tokenstore "DirectChat/pkg/token"

	"github.com/gin-gonic/gin"

	authRoutes "DirectChat/routes/auth"
	messageRoutes "DirectChat/routes/messages"
	profileRoutes "DirectChat/routes/profile"
	staticRoutes "DirectChat/routes/static"
	uploadsRoutes "DirectChat/routes/uploads"
	websocketRoutes "DirectChat/routes/websocket"
)

// Deps carries the services shared by every route group.
type Deps struct {
	Accounts  controllers.Accounts
	Messages  controllers.History
	Hub       *realtime.Hub
	Media     *services.MediaStorage
	Revoked   *tokenstore.RevocationList
	JWTSecret string
	PublicDir string
	UploadDir string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	staticRoutes.Register(r, d.PublicDir)
	websocketRoutes.Register(r, d.Hub)
	authRoutes.RegisterPublic(r, d.Accounts, d.JWTSecret)
	messageRoutes.Register(r, d.Messages, d.Hub)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(d.JWTSecret, d.Revoked))
	authRoutes.RegisterProtected(protected, d.Revoked)
	profileRoutes.Register(protected, d.Accounts)
	uploadsRoutes.Register(r, protected, d.Media, d.UploadDir)
}
