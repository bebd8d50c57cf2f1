package cookie

// Store abstracts the browser cookie jar so the propagator and the
// conversion reporter can be exercised without a real browser.
//
// Set and Delete take the already resolved cookie domain; the domain
// attribute is dropped for raw IPs and localhost, matching browser
// behavior.
type Store interface {
	// Get returns the raw cookie value, or ok=false when absent.
	Get(name string) (value string, ok bool)

	// Set writes a cookie on path / expiring days from now.
	Set(name, value string, days int, domain string)

	// Delete overwrites the cookie with a past expiry.
	Delete(name, domain string)
}
