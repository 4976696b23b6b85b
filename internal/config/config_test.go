package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHorizon(t *testing.T) {
	cfg := Default()
	require.Equal(t, []int{2024, 2025, 2026, 2027, 2028, 2029, 2030}, cfg.Horizon.Years())
	require.NotEmpty(t, cfg.Sources)
	require.Equal(t, []string{"M"}, cfg.HarmonizeTracks)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salarytrends.yaml")
	yaml := `
paths:
  data_dir: /tmp/data
horizon:
  start: 2025
  end: 2027
harmonize_tracks: ["P", "M"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/data", cfg.Paths.DataDir)
	require.Equal(t, []int{2025, 2026, 2027}, cfg.Horizon.Years())
	require.Equal(t, []string{"P", "M"}, cfg.HarmonizeTracks)
	// Untouched keys keep their defaults.
	require.Equal(t, "docs", cfg.Paths.DocsDir)
}

func TestLoadRejectsInvertedHorizon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: {start: 2030, end: 2024}"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
