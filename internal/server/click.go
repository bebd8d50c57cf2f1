package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Click simulates the upstream partner: it mints a click identifier
// inside the validated window (three UUIDs joined, 108 chars of the
// allow-listed charset) and redirects to a fixture carrying the
// tracking parameter.
func (s *Server) Click(c *gin.Context) {
	page := strings.TrimSpace(c.Query("page"))
	if page == "" {
		page = "lp"
	}

	id := uuid.NewString() + uuid.NewString() + uuid.NewString()
	trk := s.tracking.Get()

	c.Redirect(http.StatusFound, "/fixtures/"+page+"?"+trk.ParamName+"="+id)
}
