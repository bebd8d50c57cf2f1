package server

import (
	"bytes"
	"embed"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/trackpoint/internal/cookie"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

//go:embed fixtures/*.html
var fixtureFS embed.FS

func loadFixture(name string) (*html.Node, error) {
	raw, err := fixtureFS.ReadFile("fixtures/" + name + ".html")
	if err != nil {
		return nil, err
	}
	return html.Parse(bytes.NewReader(raw))
}

// Fixture serves a static page through the cross-domain propagator
// with a request-bound cookie store, so relay cookies round-trip with
// the browser.
func (s *Server) Fixture(c *gin.Context) {
	page := strings.TrimSpace(c.Param("page"))
	doc, err := loadFixture(page)
	if err != nil {
		c.String(http.StatusNotFound, "no such fixture: %s", page)
		return
	}

	store := cookie.NewRequestStore(c.Writer, c.Request, s.clk)
	s.propagator.Apply(doc, requestURL(c), store)

	renderHTML(c, doc, s.log)
}

// requestURL rebuilds the absolute page URL the browser requested;
// gin only hands us the relative form.
func requestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host
	if u.Scheme == "" {
		u.Scheme = "http"
		if c.Request.TLS != nil {
			u.Scheme = "https"
		}
	}
	return &u
}

func renderHTML(c *gin.Context, doc *html.Node, log *zap.Logger) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		log.Error("fixture render failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
