package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Tracking holds the tracking surface shared by the propagator, the
// conversion reporter and the harness: one URL parameter, three cookie
// names/patterns and two beacon bases.
type Tracking struct {
	// ParamName is the query parameter carrying the click identifier,
	// both inbound and as injected by the cross-domain propagator.
	ParamName string `mapstructure:"paramName"`

	// CookiePrefix is concatenated with the program id to form the
	// per-program cookie name.
	CookiePrefix string `mapstructure:"cookiePrefix"`

	// RelayCookie carries the click identifier across the first
	// cross-domain hop only.
	RelayCookie string `mapstructure:"relayCookie"`

	RelayTTLDays   int `mapstructure:"relayTtlDays"`
	ProgramTTLDays int `mapstructure:"programTtlDays"`

	// PrimaryBase and PostbackBase are the two fixed beacon endpoints.
	PrimaryBase  string `mapstructure:"primaryBase"`
	PostbackBase string `mapstructure:"postbackBase"`

	// MarkerClass selects propagation targets; pages without it fall
	// back to every anchor and form.
	MarkerClass string `mapstructure:"markerClass"`

	// ContainerID is the element the primary pixel is injected into.
	// Reporting aborts when the page lacks it.
	ContainerID string `mapstructure:"containerId"`
}

func DefaultTracking() Tracking {
	return Tracking{
		ParamName:      "xid",
		CookiePrefix:   "_tp_",
		RelayCookie:    "_tp_relay",
		RelayTTLDays:   1,
		ProgramTTLDays: 3650,
		PrimaryBase:    "http://localhost:8080/track",
		PostbackBase:   "http://localhost:8080/postback",
		MarkerClass:    "tp-track",
		ContainerID:    "tp_container",
	}
}

// TrackingHolder serves the current tracking config and hot-reloads it
// when the underlying file changes.
type TrackingHolder struct {
	current atomic.Value // holds Tracking
}

func NewTrackingHolder() (*TrackingHolder, error) {
	v := viper.New()

	v.SetConfigName("tracking")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/trackpoint/config") // Volume-mounted config
	v.AddConfigPath("/etc/trackpoint")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("TRACKPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultTracking()
	v.SetDefault("tracking.paramName", defaults.ParamName)
	v.SetDefault("tracking.cookiePrefix", defaults.CookiePrefix)
	v.SetDefault("tracking.relayCookie", defaults.RelayCookie)
	v.SetDefault("tracking.relayTtlDays", defaults.RelayTTLDays)
	v.SetDefault("tracking.programTtlDays", defaults.ProgramTTLDays)
	v.SetDefault("tracking.primaryBase", defaults.PrimaryBase)
	v.SetDefault("tracking.postbackBase", defaults.PostbackBase)
	v.SetDefault("tracking.markerClass", defaults.MarkerClass)
	v.SetDefault("tracking.containerId", defaults.ContainerID)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Tracking
	if err := v.UnmarshalKey("tracking", &cfg); err != nil {
		return nil, err
	}
	if err := validateTracking(cfg); err != nil {
		return nil, err
	}

	holder := &TrackingHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Tracking
		if err := v.UnmarshalKey("tracking", &updated); err != nil {
			log.Printf("[tracking-config] reload failed: %v", err)
			return
		}
		if err := validateTracking(updated); err != nil {
			log.Printf("[tracking-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tracking-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticTrackingHolder wraps a fixed Tracking config, bypassing
// file discovery. Used by tests and embedded callers.
func NewStaticTrackingHolder(cfg Tracking) *TrackingHolder {
	holder := &TrackingHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *TrackingHolder) Get() Tracking {
	return h.current.Load().(Tracking)
}

func validateTracking(cfg Tracking) error {
	if cfg.ParamName == "" {
		return errors.New("tracking.paramName cannot be empty")
	}
	if cfg.CookiePrefix == "" {
		return errors.New("tracking.cookiePrefix cannot be empty")
	}
	if cfg.RelayCookie == "" {
		return errors.New("tracking.relayCookie cannot be empty")
	}
	if cfg.RelayTTLDays <= 0 || cfg.ProgramTTLDays <= 0 {
		return errors.New("tracking cookie TTLs must be positive")
	}
	if cfg.PrimaryBase == "" || cfg.PostbackBase == "" {
		return errors.New("tracking beacon bases cannot be empty")
	}
	return nil
}
