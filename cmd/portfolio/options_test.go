package main

import (
	"testing"
	"time"

	"github.com/ragibsmajic/portfolio/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Limit = 30
	cfg.Server.RateLimit.Window = time.Second
	cfg.Server.RateLimit.Allowlist = []string{"127.0.0.1", "::1"}
	cfg.Server.RateLimit.Blocklist = []string{"10.6.6.6"}

	rl := rateLimitConfig(cfg)
	assert.True(t, rl.Enabled)
	assert.Equal(t, 30, rl.DefaultLimit)
	assert.Equal(t, time.Second, rl.DefaultWindow)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, rl.Allowlist)
	assert.Equal(t, map[string]bool{"10.6.6.6": true}, rl.Blocklist)
	assert.NotEmpty(t, rl.Routes)
}

func TestRateLimitConfig_EmptyListsAreUsable(t *testing.T) {
	rl := rateLimitConfig(config.Default())
	assert.NotNil(t, rl.Allowlist)
	assert.NotNil(t, rl.Blocklist)
	assert.Empty(t, rl.Allowlist)
}
