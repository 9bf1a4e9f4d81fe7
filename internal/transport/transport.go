// Package transport provides the HTTP transport for Admin API traffic.
package transport

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewUpstreamTransport creates the http.RoundTripper used for Admin API
// calls.
//
// The service idles between storefront bursts and intermediaries drop idle
// TCP connections without a FIN, so a pooled connection can be dead by the
// time the next burst arrives. HTTP/2 keepalive pings surface the dead
// connection before a request is written into it.
func NewUpstreamTransport(timeout time.Duration) http.RoundTripper {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	t := &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	// ConfigureTransports only fails when t already has a TLSNextProto map;
	// ours is fresh, so a failure just means no pings, not no transport.
	if h2, err := http2.ConfigureTransports(t); err == nil {
		h2.ReadIdleTimeout = 30 * time.Second
		h2.PingTimeout = 15 * time.Second
	}

	return t
}
