package controllers

import (
	"errors"
	"log"
	"net/http"

	"DirectChat/pkg/store"

	"github.com/gin-gonic/gin"
)

const msgServerError = "Server error"

// respondError maps store errors onto HTTP statuses. Causes of 500s are
// logged, never returned.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill in all fields"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	default:
		log.Printf("[http] %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
	}
}
