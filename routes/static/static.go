package static

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Register serves the browser client: index.html at /, assets under /public,
// and any other file in publicDir at its root path (/app.js, /style.css).
// Paths with no matching file get a JSON 404.
func Register(r *gin.Engine, publicDir string) {
	r.Static("/public", publicDir)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(publicDir, "index.html"))
	})
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			if file, ok := lookup(publicDir, c.Request.URL.Path); ok {
				c.File(file)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// lookup resolves urlPath inside dir. Cleaning against "/" keeps ".."
// from escaping dir.
func lookup(dir, urlPath string) (string, bool) {
	if dir == "" {
		return "", false
	}
	file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}
