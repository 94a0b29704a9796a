package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Path: "/some/path/kanban.db"},
		Server:   ServerConfig{Port: "8080"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"WARN", true}, // case insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("empty uses default", func(t *testing.T) {
		got, err := expandPath("", "/default/db")
		require.NoError(t, err)
		assert.Equal(t, "/default/db", got)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		got, err := expandPath("~/data/kanban.db", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "data", "kanban.db"), got)
	})

	t.Run("absolute stays put", func(t *testing.T) {
		got, err := expandPath("/var/lib/kanban.db", "")
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/kanban.db", got)
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got, err := expandPath("kanban.db", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nKANBAN_TEST_KEY=from-file\n\nKANBAN_TEST_QUOTED=\"quoted\"\nnot a pair\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("KANBAN_TEST_KEY", "")
	t.Setenv("KANBAN_TEST_QUOTED", "")
	os.Unsetenv("KANBAN_TEST_KEY")
	os.Unsetenv("KANBAN_TEST_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-file", os.Getenv("KANBAN_TEST_KEY"))
	assert.Equal(t, "quoted", os.Getenv("KANBAN_TEST_QUOTED"))
}

func TestLoadEnvFile_ExistingEnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("KANBAN_TEST_PRESET=from-file\n"), 0o600))

	t.Setenv("KANBAN_TEST_PRESET", "from-env")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-env", os.Getenv("KANBAN_TEST_PRESET"))
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("KANBAN_TEST_VALUE", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "KANBAN_TEST_VALUE", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "KANBAN_TEST_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("", "KANBAN_TEST_MISSING", "default"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("30s", "KANBAN_TEST_DURATION", "15s")
	require.NoError(t, err)
	assert.Equal(t, "30s", d.String())

	d, err = parseDurationValue("", "KANBAN_TEST_DURATION_MISSING", "15s")
	require.NoError(t, err)
	assert.Equal(t, "15s", d.String())

	_, err = parseDurationValue("not-a-duration", "", "15s")
	assert.Error(t, err)
}
