package ratelimit

import (
	"strings"
	"time"
)

// Route limits requests whose path matches Path. A Path ending in "/" is a
// prefix match.
type Route struct {
	Path   string
	Method string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	Routes          []Route
}

// DefaultConfig allows 600 page requests a minute per client.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       make(map[string]bool),
		Blocklist:       make(map[string]bool),
		Routes:          DefaultRoutes(),
	}
}

// DefaultRoutes leaves static assets and probes unlimited and throttles
// project fragments more tightly than full pages.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/health", Method: "GET"},
		{Path: "/metrics", Method: "GET"},
		{Path: "/assets/", Method: "GET"},
		{Path: "/projects/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// IPSet builds an allow or block list from client addresses. Blank
// entries are skipped.
func IPSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
