package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("PARLEY_TEST_KEY", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "PARLEY_TEST_KEY", "default"))

	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "PARLEY_TEST_KEY", "default"))

	// Default when nothing else is set.
	assert.Equal(t, "default", getConfigValue("", "PARLEY_TEST_UNSET", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("PARLEY_TEST_INT", "42")

	assert.Equal(t, 42, getIntConfigValue("", "PARLEY_TEST_INT", 7))
	assert.Equal(t, 7, getIntConfigValue("", "PARLEY_TEST_INT_UNSET", 7))

	// Garbage falls back to default.
	t.Setenv("PARLEY_TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, getIntConfigValue("", "PARLEY_TEST_INT_BAD", 7))
}

func TestGetFloatConfigValue(t *testing.T) {
	t.Setenv("PARLEY_TEST_FLOAT", "2.5")

	assert.Equal(t, 2.5, getFloatConfigValue("", "PARLEY_TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getFloatConfigValue("", "PARLEY_TEST_FLOAT_UNSET", 1))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\n\nPARLEY_ENVFILE_A=hello\nPARLEY_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("PARLEY_ENVFILE_A")
		os.Unsetenv("PARLEY_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("PARLEY_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("PARLEY_ENVFILE_B"))
}

func TestLoadEnvFile_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PARLEY_ENVFILE_C=from-file\n"), 0o600))

	t.Setenv("PARLEY_ENVFILE_C", "from-env")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-env", os.Getenv("PARLEY_ENVFILE_C"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("THIS IS NOT KEY VALUE\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}

func TestValidate(t *testing.T) {
	valid := &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Server:    ServerConfig{Port: "8080", ReadTimeout: 15 * time.Second},
		Store:     StoreConfig{Path: "/tmp/parley.db"},
		RateLimit: RateLimitConfig{PerUserRPS: 5, Burst: 10},
	}
	assert.NoError(t, valid.Validate())

	badEnv := *valid
	badEnv.App.Environment = "testing"
	assert.Error(t, badEnv.Validate())

	badLevel := *valid
	badLevel.Logger.Level = "verbose"
	assert.Error(t, badLevel.Validate())

	badStore := *valid
	badStore.Store.Path = ""
	assert.Error(t, badStore.Validate())

	badRate := *valid
	badRate.RateLimit.Burst = 0
	assert.Error(t, badRate.Validate())
}

func TestExpandPath(t *testing.T) {
	abs, err := expandPath("relative/path.db", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/parley.db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "parley.db"), expanded)

	def, err := expandPath("", "/default/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/default/path.db", def)
}
