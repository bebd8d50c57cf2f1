package domain

import (
	"context"
	"net/url"

	"github.com/smallbiznis/trackpoint/internal/cookie"
)

// Session carries the page-scoped capabilities a single Report call
// operates on: the page URL the identifier may arrive through, the
// cookie jar and the beacon dispatcher.
type Session struct {
	PageURL    *url.URL
	Cookies    cookie.Store
	Dispatcher Dispatcher
}

// Dispatcher is the outbound-beacon capability. Ensure checks the
// container precondition before any side effect; Primary and Postback
// are fire-and-forget, their errors are logged and never abort a
// report.
type Dispatcher interface {
	Ensure(ctx context.Context) error
	Primary(ctx context.Context, beaconURL string) error
	Postback(ctx context.Context, beaconURL string) error
}

// Service reports conversions.
type Service interface {
	// Report validates the order, resolves the click identifier,
	// fires both beacons and cleans up the relay cookie. All
	// failures are logged diagnostics; the returned sentinel only
	// says which phase aborted.
	Report(ctx context.Context, sess Session, order Order) error
}
