package pixel

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPDispatcher fires beacons as server-side GETs. Responses are
// drained and discarded; a beacon that fails stays invisible to the
// caller, matching the image-beacon convention.
type HTTPDispatcher struct {
	client *http.Client
	log    *zap.Logger
}

func NewHTTPDispatcher(client *http.Client, log *zap.Logger) *HTTPDispatcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPDispatcher{client: client, log: log.Named("pixel.http")}
}

func (d *HTTPDispatcher) Ensure(ctx context.Context) error {
	return nil
}

func (d *HTTPDispatcher) Primary(ctx context.Context, beaconURL string) error {
	d.fire(ctx, beaconURL, "primary")
	return nil
}

func (d *HTTPDispatcher) Postback(ctx context.Context, beaconURL string) error {
	d.fire(ctx, beaconURL, "postback")
	return nil
}

func (d *HTTPDispatcher) fire(ctx context.Context, beaconURL, kind string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, beaconURL, nil)
	if err != nil {
		d.log.Warn("beacon request build failed",
			zap.String("kind", kind), zap.Error(err))
		return
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Debug("beacon send failed",
			zap.String("kind", kind), zap.Error(err))
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
