package urlutil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseURLPrecedence(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.internal:8080/api/v1/menus", nil)
	r.Header.Set("X-Forwarded-Host", "menus.example.com")
	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("Origin", "https://app.example.com")

	// Configured value wins over every header
	assert.Equal(t, "https://menulink.example.com",
		ResolveBaseURL("https://menulink.example.com/", r))

	// Forwarded host beats Origin
	assert.Equal(t, "https://menus.example.com", ResolveBaseURL("", r))

	// Forwarded host without a proto assumes https
	r.Header.Del("X-Forwarded-Proto")
	assert.Equal(t, "https://menus.example.com", ResolveBaseURL("", r))

	// Origin beats the request host
	r.Header.Del("X-Forwarded-Host")
	assert.Equal(t, "https://app.example.com", ResolveBaseURL("", r))

	// Bare request falls back to its own host
	r.Header.Del("Origin")
	assert.Equal(t, "http://api.internal:8080", ResolveBaseURL("", r))
}

func TestPublicMenuURL(t *testing.T) {
	assert.Equal(t, "https://menus.example.com/m/trattoria-da-mario",
		PublicMenuURL("https://menus.example.com", "trattoria-da-mario"))
	assert.Equal(t, "https://menus.example.com/m/trattoria-da-mario",
		PublicMenuURL("https://menus.example.com/", "trattoria-da-mario"))
}
