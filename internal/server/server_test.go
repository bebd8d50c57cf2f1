package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/trackpoint/internal/clock"
	"github.com/smallbiznis/trackpoint/internal/config"
	conversionservice "github.com/smallbiznis/trackpoint/internal/conversion/service"
	obsmetrics "github.com/smallbiznis/trackpoint/internal/observability/metrics"
	"github.com/smallbiznis/trackpoint/internal/propagate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	metrics := obsmetrics.New(registry)
	holder := config.NewStaticTrackingHolder(config.DefaultTracking())
	logger := zap.NewNop()
	clk := clock.NewSystemClock()

	engine := NewEngine(registry)
	srv := NewServer(ServerParam{
		Engine:   engine,
		Config:   config.Config{ListenAddr: ":0"},
		Tracking: holder,
		Log:      logger,
		Clock:    clk,
		Conversion: conversionservice.NewService(conversionservice.ServiceParam{
			Log:      logger,
			Clock:    clk,
			Tracking: holder,
			Metrics:  metrics,
		}),
		Propagator: propagate.NewPropagator(propagate.PropagatorParam{
			Log:      logger,
			Tracking: holder,
			Metrics:  metrics,
		}),
		Metrics: metrics,
	})
	srv.RegisterRoutes()
	return engine
}

func clickID() string {
	return strings.Repeat("k", 100)
}

func validOrderBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"pid": "a00000000000001",
		"items": []map[string]any{
			{"code": "sku-1", "price": 1000, "quantity": 2},
			{"code": "sku-2", "price": 500, "quantity": 1},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestFixture_PropagatesTrackingParam(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/fixtures/lp?xid="+clickID(), nil)
	req.Host = "lp.example.com"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "https://shop.example-store.net/item/42?xid="+clickID())
	assert.Contains(t, body, `href="/about"`)
	assert.Contains(t, body, `name="xid"`)

	var relay *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_tp_relay" {
			relay = c
		}
	}
	require.NotNil(t, relay, "relay cookie must be set")
	assert.Equal(t, clickID(), relay.Value)
	assert.Equal(t, "example.com", relay.Domain)
}

func TestFixture_UnknownPage(t *testing.T) {
	engine := newTestServer(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fixtures/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConversion_RendersPixelsAndCleansCookies(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/conversion?xid="+clickID(), validOrderBody(t))
	req.Host = "shop.example.co.jp"
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "http://localhost:8080/track?")
	assert.Contains(t, body, "http://localhost:8080/postback?")
	assert.Contains(t, body, "amount=2500")

	// Non-repeat conversion deletes the per-program cookie.
	deleted := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Year() < 2000) {
			deleted[c.Name] = true
		}
	}
	assert.True(t, deleted["_tp_a00000000000001"])
	assert.True(t, deleted["_tp_relay"])
}

func TestConversion_IdentifierFromCookie(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/conversion", validOrderBody(t))
	req.Host = "shop.example.co.jp"
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "_tp_a00000000000001", Value: clickID()})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xid="+clickID())
}

func TestConversion_MissingIdentifierStillRendersPage(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/conversion", validOrderBody(t))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Thank you for your order.")
	assert.NotContains(t, body, "/track?")
}

func TestConversion_InvalidPayloadIs422(t *testing.T) {
	engine := newTestServer(t)

	body, err := json.Marshal(map[string]any{"pid": "short", "items": []any{}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/conversion?xid="+clickID(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCollectors_AnswerGIF(t *testing.T) {
	engine := newTestServer(t)

	for _, path := range []string{"/track?pid=x", "/postback?xid=y"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.Equal(t, onePixelGIF, rec.Body.Bytes())
	}
}

func TestClick_RedirectsWithMintedIdentifier(t *testing.T) {
	engine := newTestServer(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/click?page=lp", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/fixtures/lp?xid="), loc)

	id := strings.TrimPrefix(loc, "/fixtures/lp?xid=")
	assert.GreaterOrEqual(t, len(id), 92)
	assert.LessOrEqual(t, len(id), 500)
}

func TestDebug_ShowsParamsAndCookies(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/debug?foo=bar", nil)
	req.AddCookie(&http.Cookie{Name: "_tp_relay", Value: "abc"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "foo: bar")
	assert.Contains(t, rec.Body.String(), "_tp_relay=abc")
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
