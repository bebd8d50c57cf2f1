package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smallbiznis/trackpoint/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	store := NewMemoryStore(clk)

	store.Set("_tp_relay", "token", 1, "example.com")

	got, ok := store.Get("_tp_relay")
	require.True(t, ok)
	assert.Equal(t, "token", got)

	clk.Advance(25 * time.Hour)
	_, ok = store.Get("_tp_relay")
	assert.False(t, ok)
}

func TestMemoryStore_DomainOmittedForBareHosts(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	store := NewMemoryStore(clk)

	store.Set("a", "1", 1, "localhost")
	domain, ok := store.Domain("a")
	require.True(t, ok)
	assert.Empty(t, domain)

	store.Set("b", "2", 1, "example.com")
	domain, ok = store.Domain("b")
	require.True(t, ok)
	assert.Equal(t, "example.com", domain)
}

func TestMemoryStore_Delete(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	store := NewMemoryStore(clk)

	store.Set("a", "1", 1, "example.com")
	store.Delete("a", "example.com")

	_, ok := store.Get("a")
	assert.False(t, ok)
}

func TestRequestStore_ReadsRequestCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "_tp_p001", Value: "abc"})
	rec := httptest.NewRecorder()

	store := NewRequestStore(rec, req, clock.NewSystemClock())

	got, ok := store.Get("_tp_p001")
	require.True(t, ok)
	assert.Equal(t, "abc", got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestRequestStore_WritesAreVisibleAndEmitted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := NewRequestStore(rec, req, clock.NewSystemClock())
	store.Set("_tp_relay", "token", 1, "example.com")

	// Same-request read sees the write, like document.cookie.
	got, ok := store.Get("_tp_relay")
	require.True(t, ok)
	assert.Equal(t, "token", got)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "_tp_relay", cookies[0].Name)
	assert.Equal(t, "token", cookies[0].Value)
	assert.Equal(t, "example.com", cookies[0].Domain)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestRequestStore_DeleteShadowsRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "_tp_p001", Value: "abc"})
	rec := httptest.NewRecorder()

	store := NewRequestStore(rec, req, clock.NewSystemClock())
	store.Delete("_tp_p001", "example.com")

	_, ok := store.Get("_tp_p001")
	assert.False(t, ok)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}
