package api_config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLegacyServerEnv(t *testing.T) {
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, int32(20), cfg.DB.MaxConns)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := Load("")
	assert.Error(t, err)
}
