package service

import (
	"context"

	"github.com/smallbiznis/trackpoint/internal/clock"
	"github.com/smallbiznis/trackpoint/internal/config"
	conversiondomain "github.com/smallbiznis/trackpoint/internal/conversion/domain"
	"github.com/smallbiznis/trackpoint/internal/cookie"
	obsmetrics "github.com/smallbiznis/trackpoint/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Tracking *config.TrackingHolder
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clk      clock.Clock
	tracking *config.TrackingHolder
	metrics  *obsmetrics.Metrics
}

func NewService(p ServiceParam) conversiondomain.Service {
	return &Service{
		log:      p.Log.Named("conversion.service"),
		clk:      p.Clock,
		tracking: p.Tracking,
		metrics:  p.Metrics,
	}
}

// Report runs the full pipeline: container check, payload validation,
// identifier resolution, normalization, dispatch, cookie cleanup.
// Writes are deferred until validation passes; beacon errors are
// logged but never abort.
func (s *Service) Report(ctx context.Context, sess conversiondomain.Session, order conversiondomain.Order) error {
	trk := s.tracking.Get()

	if sess.Dispatcher == nil {
		s.log.Error("report aborted", zap.Error(conversiondomain.ErrNilDispatcher))
		return conversiondomain.ErrNilDispatcher
	}
	if err := sess.Dispatcher.Ensure(ctx); err != nil {
		s.log.Error("report aborted, container not found",
			zap.String("container_id", trk.ContainerID),
			zap.Error(err))
		s.metrics.ConversionRejected(obsmetrics.RejectReasonContainer)
		return conversiondomain.ErrMissingContainer
	}

	if violations := order.Validate(); len(violations) > 0 {
		for _, v := range violations {
			s.log.Error("invalid order payload",
				zap.String("field", v.Field),
				zap.String("reason", v.Reason))
		}
		s.metrics.ConversionRejected(obsmetrics.RejectReasonPayload)
		return conversiondomain.ErrInvalidOrder
	}

	clickID, rootDomain, err := s.resolveClickID(sess, order.ProgramID, trk)
	if err != nil {
		s.metrics.ConversionRejected(obsmetrics.RejectReasonIdentifier)
		return err
	}

	normalized := conversiondomain.Normalize(order, s.clk.Now())
	amount := conversiondomain.FinalAmount(order, normalized)

	primaryURL := trk.PrimaryBase + "?" +
		conversiondomain.BuildQuery(order.ProgramID, clickID, normalized, amount).Encode()
	if err := sess.Dispatcher.Primary(ctx, primaryURL); err != nil {
		s.log.Warn("primary beacon dispatch failed", zap.Error(err))
	}

	postbackURL := trk.PostbackBase + "?" +
		conversiondomain.BuildPostbackQuery(clickID, amount, normalized.OrderNumber).Encode()
	if err := sess.Dispatcher.Postback(ctx, postbackURL); err != nil {
		s.log.Warn("postback beacon dispatch failed", zap.Error(err))
	}

	// One-time attribution unless the caller marked the conversion
	// repeatable. The relay cookie's hop is over either way.
	if !order.Repeat {
		sess.Cookies.Delete(trk.CookiePrefix+order.ProgramID, rootDomain)
	}
	sess.Cookies.Delete(trk.RelayCookie, rootDomain)

	s.metrics.ConversionReported()
	s.log.Info("conversion reported",
		zap.String("pid", order.ProgramID),
		zap.String("order_number", normalized.OrderNumber),
		zap.String("currency", string(normalized.Currency)),
		zap.String("amount", conversiondomain.FormatAmount(amount)),
		zap.Bool("repeat", order.Repeat))
	return nil
}

// resolveClickID prefers a valid URL parameter, persisting it into the
// per-program cookie, and falls back to the cookie. Malformed URL
// tokens are rejected loudly and treated as absent.
func (s *Service) resolveClickID(sess conversiondomain.Session, pid string, trk config.Tracking) (string, string, error) {
	cookieName := trk.CookiePrefix + pid
	rootDomain := ""
	if sess.PageURL != nil {
		rootDomain = cookie.ResolveRootDomain(sess.PageURL.Hostname())
	}

	if sess.PageURL != nil {
		if raw := sess.PageURL.Query().Get(trk.ParamName); raw != "" {
			if conversiondomain.ValidClickID(raw) {
				sess.Cookies.Set(cookieName, raw, trk.ProgramTTLDays, rootDomain)
				return raw, rootDomain, nil
			}
			s.log.Error("click identifier rejected",
				zap.String("param", trk.ParamName),
				zap.Int("length", len(raw)))
		}
	}

	if v, ok := sess.Cookies.Get(cookieName); ok && v != "" {
		return v, rootDomain, nil
	}

	s.log.Error("no click identifier resolved", zap.String("pid", pid))
	return "", rootDomain, conversiondomain.ErrMissingIdentifier
}
