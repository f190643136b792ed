package urlutil

import (
	"net/http"
	"strings"
)

// ResolveBaseURL returns the public site base URL for a request, without a
// trailing slash. Precedence: the configured site URL, then the
// proxy-forwarded host, then the request's own origin.
func ResolveBaseURL(configured string, r *http.Request) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	if host := r.Header.Get("X-Forwarded-Host"); host != "" {
		proto := r.Header.Get("X-Forwarded-Proto")
		if proto == "" {
			proto = "https"
		}
		return proto + "://" + host
	}

	if origin := r.Header.Get("Origin"); origin != "" {
		return strings.TrimRight(origin, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// PublicMenuURL builds the visitor-facing deep link encoded into QR codes.
func PublicMenuURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/m/" + slug
}
