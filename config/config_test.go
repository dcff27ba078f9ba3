package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.False(t, cfg.Prod)
	assert.True(t, cfg.PromoteFirstJoiner)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PROD", "true")
	t.Setenv("PROMOTE_FIRST_JOINER", "false")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("SPOTIFY_CLIENT_ID", "cid")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.True(t, cfg.Prod)
	assert.False(t, cfg.PromoteFirstJoiner)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "cid", cfg.SpotifyClientID)
}
