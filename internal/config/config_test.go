package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Episodes)
	assert.Equal(t, 20, cfg.RollingWindow)
	assert.Equal(t, PolicyModeDelta, cfg.PolicyMode)
	assert.Len(t, cfg.Env.Tickers, 20)
	assert.Equal(t, []int{21, 42, 63}, cfg.Env.ExpiryChoices)
	assert.Equal(t, 11, cfg.Env.ActionLevels)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EPISODES", "250")
	t.Setenv("TICKERS", "AAPL, MSFT")
	t.Setenv("EXPIRY_CHOICES", "10,30")
	t.Setenv("RISK", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Episodes)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Env.Tickers)
	assert.Equal(t, []int{10, 30}, cfg.Env.ExpiryChoices)
	assert.Equal(t, 0.5, cfg.Env.Risk)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero episodes", func(c *Config) { c.Episodes = 0 }},
		{"zero window", func(c *Config) { c.RollingWindow = 0 }},
		{"unknown policy mode", func(c *Config) { c.PolicyMode = "oracle" }},
		{"service mode without URL", func(c *Config) {
			c.PolicyMode = PolicyModeService
			c.PolicyServiceURL = ""
		}},
		{"empty tickers", func(c *Config) { c.Env.Tickers = nil }},
		{"one-day expiry", func(c *Config) { c.Env.ExpiryChoices = []int{1} }},
		{"single action level", func(c *Config) { c.Env.ActionLevels = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
