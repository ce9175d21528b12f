package sectors

import "fmt"

// TransportError is a network-level failure (timeout, DNS, connection reset)
// while reaching the provider. It is never retried by the client itself.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sectors: transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx provider response. It carries the status code and
// the provider message body for the caller to surface; the client does not
// retry it.
type UpstreamError struct {
	Status int
	URL    string
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sectors: upstream status %d for %s: %s", e.Status, e.URL, e.Body)
}
