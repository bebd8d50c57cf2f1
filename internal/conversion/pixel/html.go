// Package pixel provides the beacon dispatchers behind
// domain.Dispatcher: an HTML dispatcher that injects tracking images
// into a rendered page and an HTTP dispatcher that fires the GETs
// server-side.
package pixel

import (
	"context"
	"errors"

	"github.com/smallbiznis/trackpoint/pkg/htmlutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrContainerNotFound = errors.New("container_not_found")

// HTMLDispatcher injects beacon pixels into a parsed document. The
// primary pixel lives inside the designated container and is reused on
// repeated calls so one page never accumulates duplicate tracking
// images; the postback pixel is always a fresh element on the body.
type HTMLDispatcher struct {
	doc         *html.Node
	containerID string
}

func NewHTMLDispatcher(doc *html.Node, containerID string) *HTMLDispatcher {
	return &HTMLDispatcher{doc: doc, containerID: containerID}
}

func (d *HTMLDispatcher) Ensure(ctx context.Context) error {
	if htmlutil.FindByID(d.doc, d.containerID) == nil {
		return ErrContainerNotFound
	}
	return nil
}

func (d *HTMLDispatcher) Primary(ctx context.Context, beaconURL string) error {
	container := htmlutil.FindByID(d.doc, d.containerID)
	if container == nil {
		return ErrContainerNotFound
	}

	if img := htmlutil.FindFirst(container, atom.Img); img != nil {
		htmlutil.SetAttr(img, "src", beaconURL)
		return nil
	}

	container.AppendChild(pixelImg(beaconURL))
	return nil
}

func (d *HTMLDispatcher) Postback(ctx context.Context, beaconURL string) error {
	body := htmlutil.FindFirst(d.doc, atom.Body)
	if body == nil {
		return errors.New("document_has_no_body")
	}
	body.AppendChild(pixelImg(beaconURL))
	return nil
}

func pixelImg(src string) *html.Node {
	return htmlutil.NewElement(atom.Img,
		html.Attribute{Key: "src", Val: src},
		html.Attribute{Key: "width", Val: "1"},
		html.Attribute{Key: "height", Val: "1"},
		html.Attribute{Key: "style", Val: "display:none"},
	)
}
