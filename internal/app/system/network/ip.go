// internal/app/system/network/ip.go

// Package network holds small request-level network helpers.
package network

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client address for a request. The app
// runs behind a reverse proxy in production, so X-Forwarded-For wins when
// present (first hop), then X-Real-IP, then the socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
