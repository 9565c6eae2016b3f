package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPath_Priority(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("explicit path wins even when missing", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/from/env.yaml")
		assert.Equal(t, "/explicit.yaml", GetConfigPath("/explicit.yaml"))
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/from/env.yaml")
		assert.Equal(t, "/from/env.yaml", GetConfigPath(""))
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		assert.Equal(t, "", GetConfigPath(""))
	})

	t.Run("working directory default names in order", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0644))
		assert.Equal(t, filepath.Join(dir, "config.json"), GetConfigPath(""))

		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(""), 0644))
		assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath(""))
	})
}
