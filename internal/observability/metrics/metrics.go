package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module provides the registry and the tracking instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)

const (
	BeaconKindTrack    = "track"
	BeaconKindPostback = "postback"
)

const (
	RejectReasonContainer  = "missing_container"
	RejectReasonPayload    = "invalid_payload"
	RejectReasonIdentifier = "missing_identifier"
)

// Metrics captures tracking health signals.
type Metrics struct {
	conversionsReported prometheus.Counter
	conversionsRejected *prometheus.CounterVec
	beaconsReceived     *prometheus.CounterVec
	linksPropagated     prometheus.Counter
}

func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// New registers the tracking instruments on the given registerer.
func New(registerer *prometheus.Registry) *Metrics {
	conversionsReported := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conversions_reported_total",
		Help: "Conversion reports that dispatched both beacons.",
	})
	// Surfaces aborts by phase to isolate misconfigured merchant pages.
	conversionsRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conversions_rejected_total",
		Help: "Conversion reports aborted before dispatch, by reason.",
	}, []string{"reason"})
	beaconsReceived := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "beacons_received_total",
		Help: "Beacon GETs answered by the local collectors, by kind.",
	}, []string{"kind"})
	linksPropagated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "links_propagated_total",
		Help: "Outbound anchors rewritten with the tracking parameter.",
	})

	registerer.MustRegister(
		conversionsReported,
		conversionsRejected,
		beaconsReceived,
		linksPropagated,
	)

	return &Metrics{
		conversionsReported: conversionsReported,
		conversionsRejected: conversionsRejected,
		beaconsReceived:     beaconsReceived,
		linksPropagated:     linksPropagated,
	}
}

func (m *Metrics) ConversionReported() {
	if m == nil {
		return
	}
	m.conversionsReported.Inc()
}

func (m *Metrics) ConversionRejected(reason string) {
	if m == nil {
		return
	}
	m.conversionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) BeaconReceived(kind string) {
	if m == nil {
		return
	}
	m.beaconsReceived.WithLabelValues(kind).Inc()
}

func (m *Metrics) LinkPropagated() {
	if m == nil {
		return
	}
	m.linksPropagated.Inc()
}
