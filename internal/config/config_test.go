package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	cfg, err := Init()

	require.NoError(t, err)
	assert.Equal(t, "https://scrapbox.io", cfg.BaseURL)
	assert.Equal(t, "", cfg.Session)
}

func TestInitEnvOverride(t *testing.T) {
	t.Setenv("SBCODE_PROJECT", "home")
	t.Setenv("SBCODE_SESSION", "s-abc")

	cfg, err := Init()

	require.NoError(t, err)
	assert.Equal(t, "home", cfg.Project)
	assert.Equal(t, "s-abc", cfg.Session)
}
