package controllers

import (
	"context"
	"log"
	"net/http"

	"DirectChat/middleware"
	"DirectChat/models"
	tokenstore "DirectChat/pkg/token"

	"github.com/gin-gonic/gin"
)

// Accounts is the account store as seen by the HTTP layer.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindCredentials writes a 400 and returns false when a field is missing.
func bindCredentials(c *gin.Context) (credentials, bool) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill in all fields"})
		return body, false
	}
	return body, true
}

// Register handler
func Register(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindCredentials(c)
		if !ok {
			return
		}
		if _, err := accounts.Register(c.Request.Context(), body.Username, body.Password); err != nil {
			respondError(c, "register", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Login handler. The access token is only needed for the protected
// routes; the chat socket itself does not require it.
func Login(accounts Accounts, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindCredentials(c)
		if !ok {
			return
		}
		user, err := accounts.Authenticate(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			respondError(c, "login", err)
			return
		}

		tokenStr, err := tokenstore.Issue(jwtSecret, user.ID, user.Username)
		if err != nil {
			log.Printf("[http] login: sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username, "access_token": tokenStr})
	}
}

// Logout handler
func Logout(revoked *tokenstore.RevocationList) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := middleware.CurrentClaims(c); ok {
			revoked.Revoke(claims.JTI, claims.ExpiresAt)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func Profile(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := accounts.FindByID(c.Request.Context(), c.GetUint(middleware.ContextUserIDKey))
		if err != nil {
			respondError(c, "profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	}
}
