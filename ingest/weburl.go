// Package ingest fetches requirement text from web sources: a hardened HTTP
// fetcher with SSRF protection and a main-content extractor that turns an
// HTML page into analyzable plain text.
package ingest

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Reserved ranges not covered by net.IP's own classification, parsed once.
var (
	cgnat    *net.IPNet // 100.64.0.0/10 - carrier-grade NAT
	v6unique *net.IPNet // fc00::/7 - IPv6 unique local
	v6link   *net.IPNet // fe80::/10 - IPv6 link-local
)

func init() {
	for cidr, target := range map[string]**net.IPNet{
		"100.64.0.0/10": &cgnat,
		"fc00::/7":      &v6unique,
		"fe80::/10":     &v6link,
	} {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("ingest: invalid reserved CIDR " + cidr + ": " + err.Error())
		}
		*target = network
	}
}

// ValidateURL rejects URLs that could reach internal infrastructure. It
// requires HTTPS and blocks localhost, local domains, and private or reserved
// IP literals.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("URL has no host")
	}
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return fmt.Errorf("localhost URLs are not allowed")
	}
	if strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("local domain URLs are not allowed")
	}

	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}

	return nil
}

// IsPrivateIP reports whether an IP is in a private or reserved range,
// including IPv4-mapped IPv6 addresses.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	// IPv4-mapped IPv6 (::ffff:x.x.x.x) must be checked as IPv4.
	if v4 := ip.To4(); v4 != nil {
		ip = v4
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return true
		}
	}

	return cgnat.Contains(ip) || v6unique.Contains(ip) || v6link.Contains(ip)
}
