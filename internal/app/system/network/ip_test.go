// internal/app/system/network/ip_test.go
package network

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.7", "", "10.0.0.1:40312", "203.0.113.7"},
		{"forwarded chain takes first hop", "203.0.113.7, 10.0.0.2, 172.16.0.1", "", "10.0.0.1:40312", "203.0.113.7"},
		{"forwarded trims spaces", "  203.0.113.7  ", "", "10.0.0.1:40312", "203.0.113.7"},
		{"real ip fallback", "", "203.0.113.7", "10.0.0.1:40312", "203.0.113.7"},
		{"forwarded wins over real ip", "203.0.113.7", "10.0.0.2", "10.0.0.1:40312", "203.0.113.7"},
		{"remote addr strips port", "", "", "203.0.113.7:40312", "203.0.113.7"},
		{"remote addr without port", "", "", "203.0.113.7", "203.0.113.7"},
		{"ipv6 remote addr", "", "", "[::1]:40312", "::1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}
