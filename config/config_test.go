package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/config"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relsynth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver_deadline_ms: 9000\nfeatures:\n  sqlite_oracle: true\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.SolverDeadlineMS)
	assert.True(t, cfg.Feature("sqlite_oracle"))
	assert.Equal(t, "v", cfg.VarPrefix) // unset field keeps the default
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load("/nonexistent/relsynth.yaml")
	require.Error(t, err)
}
