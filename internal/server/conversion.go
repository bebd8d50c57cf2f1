package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	conversiondomain "github.com/smallbiznis/trackpoint/internal/conversion/domain"
	"github.com/smallbiznis/trackpoint/internal/conversion/pixel"
	"github.com/smallbiznis/trackpoint/internal/cookie"
	"go.uber.org/zap"
)

// Conversion binds an order payload, runs the reporter against the
// thank-you fixture and returns the rendered page. Tracking failures
// never fail the page: the shopper sees a thank-you page either way
// and the diagnostics go to the log. Payload violations are the
// exception; they are the integrator's bug and surface as 422.
func (s *Server) Conversion(c *gin.Context) {
	var order conversiondomain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	doc, err := loadFixture("thanks")
	if err != nil {
		s.log.Error("thanks fixture missing", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	sess := conversiondomain.Session{
		PageURL:    requestURL(c),
		Cookies:    cookie.NewRequestStore(c.Writer, c.Request, s.clk),
		Dispatcher: pixel.NewHTMLDispatcher(doc, s.tracking.Get().ContainerID),
	}

	if err := s.conversionSvc.Report(c.Request.Context(), sess, order); err != nil {
		if errors.Is(err, conversiondomain.ErrInvalidOrder) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		// Missing identifier or container: log-only, page still renders.
	}

	renderHTML(c, doc, s.log)
}
