package pixel

import "context"

// Recorder captures dispatched beacon URLs for tests.
type Recorder struct {
	ContainerMissing bool
	PrimaryURLs      []string
	PostbackURLs     []string
}

func (r *Recorder) Ensure(ctx context.Context) error {
	if r.ContainerMissing {
		return ErrContainerNotFound
	}
	return nil
}

func (r *Recorder) Primary(ctx context.Context, beaconURL string) error {
	r.PrimaryURLs = append(r.PrimaryURLs, beaconURL)
	return nil
}

func (r *Recorder) Postback(ctx context.Context, beaconURL string) error {
	r.PostbackURLs = append(r.PostbackURLs, beaconURL)
	return nil
}
