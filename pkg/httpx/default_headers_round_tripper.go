package httpx

import (
	"fmt"
	"net/http"
)

// DefaultHeadersRoundTripper sets headers on every outgoing request unless
// the request already carries them. The storefront client uses it for the
// browser-like headers the members portal expects.
type DefaultHeadersRoundTripper struct {
	next    http.RoundTripper
	headers http.Header
}

func NewDefaultHeadersRoundTripper(
	next http.RoundTripper,
	headers http.Header,
) DefaultHeadersRoundTripper {
	return DefaultHeadersRoundTripper{
		next:    next,
		headers: headers,
	}
}

func (rt DefaultHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for name, values := range rt.headers {
		if req.Header.Get(name) != "" {
			continue
		}

		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
