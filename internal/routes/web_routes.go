package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const pagesDir = "./web/pages"

// WebRoutes serves the static customer and admin pages plus uploaded car
// images. Unmatched API paths answer JSON; everything else gets the 404 page.
func WebRoutes(r *gin.Engine, uploadDir string) {
	r.Static("/css", "./web/css")
	r.Static("/js", "./web/js")
	r.Static("/uploads", uploadDir)

	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(pagesDir, "index.html"))
	})
	r.GET("/booking", func(c *gin.Context) {
		c.File(filepath.Join(pagesDir, "booking-form.html"))
	})
	r.GET("/admin", func(c *gin.Context) {
		c.File(filepath.Join(pagesDir, "admin-login.html"))
	})
	r.GET("/pages/:page", servePage)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API endpoint not found",
			})
			return
		}
		c.Status(http.StatusNotFound)
		c.File(filepath.Join(pagesDir, "404.html"))
	})
}

func servePage(c *gin.Context) {
	page := filepath.Base(c.Param("page")) // no traversal
	if !strings.HasSuffix(page, ".html") {
		page += ".html"
	}

	path := filepath.Join(pagesDir, page)
	if _, err := os.Stat(path); err != nil {
		c.Status(http.StatusNotFound)
		c.File(filepath.Join(pagesDir, "404.html"))
		return
	}
	c.File(path)
}
