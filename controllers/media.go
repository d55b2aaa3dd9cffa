package controllers

import (
	"errors"
	"log"
	"net/http"

	"DirectChat/pkg/services"

	"github.com/gin-gonic/gin"
)

// UploadMedia stores a multipart "file" field and returns the URL and
// message type a client should send it with.
func UploadMedia(media *services.MediaStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
			return
		}
		defer f.Close()

		saved, err := media.Save(f)
		switch {
		case errors.Is(err, services.ErrUnsupportedMedia):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only image, video and gif uploads are allowed"})
		case errors.Is(err, services.ErrMediaTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		case err != nil:
			log.Printf("[http] upload: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
		default:
			c.JSON(http.StatusOK, saved)
		}
	}
}
