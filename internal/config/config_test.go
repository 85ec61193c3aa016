package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("bank.db")
	cfg.Assessor.URL = "http://localhost:9090/assess"
	cfg.Seed.FixturesDir = "fixtures"

	path := filepath.Join(t.TempDir(), "solobank.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Database.Path, got.Database.Path)
	assert.Equal(t, cfg.Server.ListenAddr, got.Server.ListenAddr)
	assert.Equal(t, cfg.Server.Metrics, got.Server.Metrics)
	assert.Equal(t, cfg.Assessor.URL, got.Assessor.URL)
	assert.Equal(t, cfg.Assessor.TimeoutSeconds, got.Assessor.TimeoutSeconds)
	assert.Equal(t, "fixtures", got.Seed.FixturesDir)
}

func TestDefaults(t *testing.T) {
	cfg := Default("bank.db")

	assert.Equal(t, "bank.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.True(t, cfg.Server.Metrics)
	assert.Empty(t, cfg.Assessor.URL)
	assert.Equal(t, 60*time.Second, cfg.Assessor.Timeout())
}

func TestAssessorTimeoutFallback(t *testing.T) {
	a := AssessorConfig{TimeoutSeconds: 0}
	assert.Equal(t, 60*time.Second, a.Timeout())

	a.TimeoutSeconds = 5
	assert.Equal(t, 5*time.Second, a.Timeout())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
