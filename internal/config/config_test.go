package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "geotime.db", c.DatabasePath)
	assert.Equal(t, 60*time.Second, c.FixTimeout)
	assert.Zero(t, c.DesiredAccuracy)
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "geotime.db", cfg.DatabasePath)
	assert.Equal(t, 60*time.Second, cfg.FixTimeout)
}
