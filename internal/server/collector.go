package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obsmetrics "github.com/smallbiznis/trackpoint/internal/observability/metrics"
	"go.uber.org/zap"
)

// onePixelGIF is a transparent 1x1 GIF, the classic beacon response.
var onePixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// CollectTrack answers the primary tracking beacon. The harness points
// the configured beacon bases here so the loop closes locally.
func (s *Server) CollectTrack(c *gin.Context) {
	s.collect(c, obsmetrics.BeaconKindTrack)
}

// CollectPostback answers the partner postback beacon.
func (s *Server) CollectPostback(c *gin.Context) {
	s.collect(c, obsmetrics.BeaconKindPostback)
}

func (s *Server) collect(c *gin.Context, kind string) {
	s.metrics.BeaconReceived(kind)
	s.log.Info("beacon received",
		zap.String("kind", kind),
		zap.String("query", c.Request.URL.RawQuery))
	c.Data(http.StatusOK, "image/gif", onePixelGIF)
}
