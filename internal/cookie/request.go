package cookie

import (
	"net/http"
	"time"

	"github.com/smallbiznis/trackpoint/internal/clock"
)

// RequestStore binds a Store to one HTTP exchange: reads come from the
// request's Cookie header, writes become Set-Cookie headers on the
// response. Writes are overlaid on reads so that a cookie set earlier
// in the same request is immediately visible, the way document.cookie
// behaves in a browser.
type RequestStore struct {
	req     *http.Request
	w       http.ResponseWriter
	clk     clock.Clock
	pending map[string]*string // nil value marks a deletion
}

func NewRequestStore(w http.ResponseWriter, req *http.Request, clk clock.Clock) *RequestStore {
	return &RequestStore{
		req:     req,
		w:       w,
		clk:     clk,
		pending: make(map[string]*string),
	}
}

func (s *RequestStore) Get(name string) (string, bool) {
	if v, ok := s.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.req.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *RequestStore) Set(name, value string, days int, domain string) {
	c := &http.Cookie{
		Name:    name,
		Value:   value,
		Path:    "/",
		Expires: s.clk.Now().AddDate(0, 0, days),
	}
	if !bareHost(domain) {
		c.Domain = domain
	}
	http.SetCookie(s.w, c)
	s.pending[name] = &value
}

func (s *RequestStore) Delete(name, domain string) {
	c := &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	}
	if !bareHost(domain) {
		c.Domain = domain
	}
	http.SetCookie(s.w, c)
	s.pending[name] = nil
}
