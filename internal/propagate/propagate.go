// Package propagate carries the tracking parameter across domain
// boundaries: it lifts the parameter from the landing URL into the
// short-lived relay cookie and rewrites outbound links and forms so
// the next page receives it again.
package propagate

import (
	"net/url"
	"regexp"

	"github.com/smallbiznis/trackpoint/internal/config"
	"github.com/smallbiznis/trackpoint/internal/cookie"
	obsmetrics "github.com/smallbiznis/trackpoint/internal/observability/metrics"
	"github.com/smallbiznis/trackpoint/pkg/htmlutil"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tokenPattern is the permissive relay gate: allow-listed charset
// only, no length window. The strict window applies later, at
// conversion time.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9\-_.]+$`)

type PropagatorParam struct {
	fx.In

	Log      *zap.Logger
	Tracking *config.TrackingHolder
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Propagator struct {
	log      *zap.Logger
	tracking *config.TrackingHolder
	metrics  *obsmetrics.Metrics
}

func NewPropagator(p PropagatorParam) *Propagator {
	return &Propagator{
		log:      p.Log.Named("propagate"),
		tracking: p.Tracking,
		metrics:  p.Metrics,
	}
}

// Apply runs the single-pass propagation over a parsed page. Absence
// of the parameter or the relay cookie is a silent no-op; malformed
// pieces are logged and skipped, never fatal to the page.
func (p *Propagator) Apply(doc *html.Node, pageURL *url.URL, store cookie.Store) {
	trk := p.tracking.Get()
	rootDomain := cookie.ResolveRootDomain(pageURL.Hostname())

	if raw := pageURL.Query().Get(trk.ParamName); raw != "" {
		if tokenPattern.MatchString(raw) {
			store.Set(trk.RelayCookie, raw, trk.RelayTTLDays, rootDomain)
		} else {
			p.log.Warn("tracking parameter failed the relay gate",
				zap.String("param", trk.ParamName))
		}
	}

	value, ok := store.Get(trk.RelayCookie)
	if !ok || value == "" {
		return
	}

	for _, n := range p.targets(doc, trk.MarkerClass) {
		switch n.DataAtom {
		case atom.A:
			p.rewriteAnchor(n, pageURL, trk.ParamName, value)
		case atom.Form:
			p.injectHiddenField(n, trk.ParamName, value)
		}
	}
}

// targets prefers elements carrying the marker class and falls back to
// every anchor and form on the page.
func (p *Propagator) targets(doc *html.Node, markerClass string) []*html.Node {
	var marked, all []*html.Node
	htmlutil.Walk(doc, func(n *html.Node) {
		if n.DataAtom != atom.A && n.DataAtom != atom.Form {
			return
		}
		all = append(all, n)
		if htmlutil.HasClass(n, markerClass) {
			marked = append(marked, n)
		}
	})
	if len(marked) > 0 {
		return marked
	}
	return all
}

func (p *Propagator) rewriteAnchor(n *html.Node, pageURL *url.URL, param, value string) {
	href := htmlutil.Attr(n, "href")
	if href == "" {
		return
	}

	u, err := pageURL.Parse(href)
	if err != nil {
		p.log.Warn("unparseable href skipped", zap.String("href", href), zap.Error(err))
		return
	}
	if u.Host == pageURL.Host {
		return
	}
	q := u.Query()
	if q.Get(param) != "" {
		return
	}

	q.Set(param, value)
	u.RawQuery = q.Encode()
	htmlutil.SetAttr(n, "href", u.String())
	p.metrics.LinkPropagated()
}

func (p *Propagator) injectHiddenField(form *html.Node, param, value string) {
	exists := false
	htmlutil.Walk(form, func(n *html.Node) {
		if n.DataAtom == atom.Input && htmlutil.Attr(n, "name") == param {
			exists = true
		}
	})
	if exists {
		return
	}

	form.AppendChild(htmlutil.NewElement(atom.Input,
		html.Attribute{Key: "type", Val: "hidden"},
		html.Attribute{Key: "name", Val: param},
		html.Attribute{Key: "value", Val: value},
	))
}
