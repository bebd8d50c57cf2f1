package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/trackpoint/internal/clock"
	"github.com/smallbiznis/trackpoint/internal/config"
	"github.com/smallbiznis/trackpoint/internal/conversion"
	conversiondomain "github.com/smallbiznis/trackpoint/internal/conversion/domain"
	obsmetrics "github.com/smallbiznis/trackpoint/internal/observability/metrics"
	"github.com/smallbiznis/trackpoint/internal/propagate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	obsmetrics.Module,
	conversion.Module,
	propagate.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

// NewEngine builds the gin engine with the standard health and metrics
// endpoints.
func NewEngine(registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type ServerParam struct {
	fx.In

	Engine     *gin.Engine
	Config     config.Config
	Tracking   *config.TrackingHolder
	Log        *zap.Logger
	Clock      clock.Clock
	Conversion conversiondomain.Service
	Propagator *propagate.Propagator
	Metrics    *obsmetrics.Metrics
}

// Server is the manual test harness for the tracking components:
// fixture pages run through the propagator, the conversion endpoint
// renders a pixel-bearing thank-you page, and the local collectors
// answer the beacons so the loop closes without external endpoints.
type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	tracking      *config.TrackingHolder
	log           *zap.Logger
	clk           clock.Clock
	conversionSvc conversiondomain.Service
	propagator    *propagate.Propagator
	metrics       *obsmetrics.Metrics
}

func NewServer(p ServerParam) *Server {
	return &Server{
		engine:        p.Engine,
		cfg:           p.Config,
		tracking:      p.Tracking,
		log:           p.Log.Named("server"),
		clk:           p.Clock,
		conversionSvc: p.Conversion,
		propagator:    p.Propagator,
		metrics:       p.Metrics,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/fixtures/index")
	})
	s.engine.GET("/fixtures/:page", s.Fixture)
	s.engine.POST("/conversion", s.Conversion)
	s.engine.GET("/debug", s.Debug)
	s.engine.GET("/track", s.CollectTrack)
	s.engine.GET("/postback", s.CollectPostback)
	s.engine.GET("/click", s.Click)
}
