// ABOUTME: HTTP client for status servers with bounded dial, handshake, and header waits
// ABOUTME: A slow or stalled server fails the fetch instead of pinning a worker

package http

import (
	"net"
	"net/http"
	"time"
)

// Transport limits. The overall request timeout comes from config.
const (
	DialTimeout           = 10 * time.Second
	TLSHandshakeTimeout   = 10 * time.Second
	ResponseHeaderTimeout = 15 * time.Second
	IdleConnTimeout       = 60 * time.Second
)

// NewClient returns a client whose requests give up after timeout. Zero
// means no overall limit; the transport limits still apply. Workers share
// connections, so keep-alive is sized for a couple of hosts.
func NewClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: DialTimeout, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			IdleConnTimeout:       IdleConnTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
		},
	}
}
