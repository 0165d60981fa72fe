package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/content"
)

// indexData is the view model for the landing page. Overlays render
// closed; the browser-side module opens them.
type indexData struct {
	Title     string
	Portfolio *content.Portfolio
	Active    string
	Version   string
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexData{
		Title:     s.portfolio.Profile.Brand,
		Portfolio: s.portfolio,
		Active:    s.portfolio.Sections[0].ID,
		Version:   s.version,
	})
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title": "Privacy Policy",
	})
}

func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"title": "Not Found",
		"error": "That page does not exist.",
	})
}
