package ingest

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"valid https", "https://example.com/requirements", ""},
		{"valid with port", "https://example.com:8443/spec", ""},
		{"http rejected", "http://example.com", "only HTTPS"},
		{"no scheme", "example.com/page", "only HTTPS"},
		{"localhost", "https://localhost/admin", "localhost"},
		{"loopback v4", "https://127.0.0.1/", "localhost"},
		{"local domain", "https://wiki.corp.local/page", "local domain"},
		{"internal domain", "https://vault.internal/secrets", "local domain"},
		{"private ip literal", "https://10.0.0.5/page", "private IP"},
		{"cgnat ip literal", "https://100.64.1.1/page", "private IP"},
		{"empty host", "https:///page", "no host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"100.64.0.1", true},   // carrier-grade NAT
		{"::1", true},          // IPv6 loopback
		{"fe80::1", true},      // IPv6 link-local
		{"fc00::1", true},      // IPv6 unique local
		{"::ffff:10.0.0.1", true}, // IPv4-mapped IPv6
		{"8.8.8.8", false},
		{"93.184.216.34", false},
		{"2606:2800:220:1::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			assert.NotNil(t, ip, "test IP must parse")
			assert.Equal(t, tt.want, IsPrivateIP(ip))
		})
	}
}
