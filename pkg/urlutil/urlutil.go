// Package urlutil provides URL normalization and domain extraction helpers
// shared by the analysis services.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const maxURLLength = 2048

// Normalize prepends https:// when the scheme is missing.
func Normalize(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}

// ExtractDomain returns the lower-cased hostname of a URL. Falls back to the
// lower-cased input when parsing fails, so heuristics can still run on
// garbage input.
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(Normalize(rawURL))
	if err != nil || parsed.Hostname() == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	return strings.ToLower(parsed.Hostname())
}

// RootDomain returns the registrable domain (e.g. chat.zalo.me -> zalo.me,
// shop.example.com.vn -> example.com.vn). It consults the public suffix
// list first and falls back to naive suffix stripping for hosts the list
// does not cover.
func RootDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	if root, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		return root
	}

	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	// Two-part suffixes like com.vn or co.uk keep three labels.
	if len(parts) >= 3 && len(parts[len(parts)-2]) <= 3 {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// Validate checks a raw URL before analysis starts. Invalid input is a
// caller error and is rejected here rather than degraded downstream.
func Validate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("url must not be empty")
	}
	if len(input) > maxURLLength {
		return "", fmt.Errorf("url exceeds %d characters", maxURLLength)
	}

	normalized := Normalize(input)
	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("url has no host")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || host == "127.0.0.1" ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "172.16.") ||
		strings.HasSuffix(host, ".local") {
		return "", fmt.Errorf("internal addresses are not supported")
	}

	return parsed.String(), nil
}
