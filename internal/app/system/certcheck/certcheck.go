// internal/app/system/certcheck/certcheck.go

// Package certcheck inspects the TLS certificate behind the site's public
// base URL so the expiry job can warn before visitors see browser errors.
package certcheck

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// dialTimeout bounds the TLS handshake; the check runs from a background
// job and must not hang on an unreachable host.
const dialTimeout = 5 * time.Second

// Result describes the certificate serving a host.
type Result struct {
	Host      string    `json:"host"`
	ExpiresAt time.Time `json:"expires_at"`
	DaysLeft  int       `json:"days_left"`
	Issuer    string    `json:"issuer"`
	IsValid   bool      `json:"is_valid"`
	Error     string    `json:"error,omitempty"`
}

// Check dials the host on port 443 and reads its leaf certificate.
// Accepts a bare hostname or a URL. Plain-http and localhost targets are
// reported valid without dialing; there is nothing to check.
func Check(target string) Result {
	host, skip := resolveHost(target)
	if host == "" {
		return Result{Host: target, Error: "invalid host"}
	}
	if skip {
		return Result{Host: host, IsValid: true, Error: "no TLS to check"}
	}

	res := Result{Host: host}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", net.JoinHostPort(host, "443"), &tls.Config{
		ServerName: host,
	})
	if err != nil {
		res.Error = fmt.Sprintf("connection failed: %v", err)
		return res
	}
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		res.Error = "no certificates presented"
		return res
	}

	leaf := certs[0]
	now := time.Now()
	res.ExpiresAt = leaf.NotAfter
	res.DaysLeft = int(leaf.NotAfter.Sub(now).Hours() / 24)
	res.Issuer = leaf.Issuer.CommonName
	res.IsValid = now.After(leaf.NotBefore) && now.Before(leaf.NotAfter)
	return res
}

// resolveHost extracts the hostname and reports whether the check should
// be skipped (plain http or a local development host).
func resolveHost(target string) (host string, skip bool) {
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", false
		}
		host = u.Hostname()
		if u.Scheme != "https" {
			return host, true
		}
	} else {
		host = target
		if h, _, err := net.SplitHostPort(target); err == nil {
			host = h
		}
	}

	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return host, true
	}
	return host, false
}
