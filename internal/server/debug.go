package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/trackpoint/internal/debugpanel"
)

// Debug renders the inspection overlay for the current request.
func (s *Server) Debug(c *gin.Context) {
	panel := debugpanel.Render(c.Request.URL.Query(), c.Request.Cookies())
	page := `<!DOCTYPE html><html><head><title>debug</title></head><body>` +
		string(panel) + `</body></html>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
