package uploads

import (
	"DirectChat/controllers"
	"DirectChat/pkg/services"

	"github.com/gin-gonic/gin"
)

// Register serves stored uploads publicly and accepts new ones on the
// protected group.
func Register(r *gin.Engine, protected *gin.RouterGroup, media *services.MediaStorage, uploadDir string) {
	r.Static("/uploads", uploadDir)
	protected.POST("/media", controllers.UploadMedia(media))
}
