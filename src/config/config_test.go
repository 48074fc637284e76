package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test; t.Setenv is used
// first so the original value is restored afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

var configEnvKeys = []string{
	"CONFIG_FILE", "PORT", "DATABASE_URL", "TOKEN_SECRET", "TOKEN_TTL_MINUTES",
	"AUTH_MODE", "BASIC_AUTH_USERNAME", "BASIC_AUTH_PASSWORD", "BASIC_AUTH_PASSWORD_HASH",
	"BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, configEnvKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 60, cfg.TokenTTLMinutes)
	assert.Equal(t, AuthModeBearer, cfg.AuthMode)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NotEmpty(t, cfg.TokenSecret, "a signing secret is generated when none is configured")
	assert.Len(t, cfg.TokenSecret, 32)
}

func TestLoad_EnvOverrides(t *testing.T) {
	unsetEnv(t, configEnvKeys...)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_SECRET", "configured-secret")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_MODE", AuthModeBasic)
	t.Setenv("BASIC_AUTH_USERNAME", "admin")
	t.Setenv("BASIC_AUTH_PASSWORD", "pass")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "configured-secret", cfg.TokenSecret)
	assert.Equal(t, 15, cfg.TokenTTLMinutes)
	assert.Equal(t, AuthModeBasic, cfg.AuthMode)
	assert.Equal(t, "admin", cfg.BasicUsername)
	assert.Equal(t, "pass", cfg.BasicPassword)
}

func TestLoad_BasicModeRequiresCredentials(t *testing.T) {
	t.Run("no identity configured", func(t *testing.T) {
		unsetEnv(t, configEnvKeys...)
		t.Setenv("AUTH_MODE", AuthModeBasic)

		_, err := Load()
		assert.Error(t, err, "empty credentials must not become the accepted identity")
	})

	t.Run("username without password", func(t *testing.T) {
		unsetEnv(t, configEnvKeys...)
		t.Setenv("AUTH_MODE", AuthModeBasic)
		t.Setenv("BASIC_AUTH_USERNAME", "admin")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("username with hash", func(t *testing.T) {
		unsetEnv(t, configEnvKeys...)
		t.Setenv("AUTH_MODE", AuthModeBasic)
		t.Setenv("BASIC_AUTH_USERNAME", "admin")
		t.Setenv("BASIC_AUTH_PASSWORD_HASH", "$2a$10$placeholder")

		_, err := Load()
		assert.NoError(t, err)
	})
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	unsetEnv(t, configEnvKeys...)
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	unsetEnv(t, configEnvKeys...)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: 3000\ntoken_secret: file-secret\nauth_mode: basic\nbasic_username: admin\nbasic_password: file-pass\ncors_origins:\n  - https://franes.example\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "file-secret", cfg.TokenSecret)
	assert.Equal(t, AuthModeBasic, cfg.AuthMode)
	assert.Equal(t, "admin", cfg.BasicUsername)
	assert.Equal(t, []string{"https://franes.example"}, cfg.CORSOrigins)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	unsetEnv(t, configEnvKeys...)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 3000\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	unsetEnv(t, configEnvKeys...)
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single origin", "https://franes.example", []string{"https://franes.example"}},
		{
			"trims whitespace and trailing slash",
			" https://franes.example/ , http://localhost:3000",
			[]string{"https://franes.example", "http://localhost:3000"},
		},
		{"drops empty entries", "https://franes.example,,", []string{"https://franes.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitOrigins(tt.raw))
		})
	}
}

func TestLoad_CORSOriginsFromEnv(t *testing.T) {
	unsetEnv(t, configEnvKeys...)
	t.Setenv("CORS_ORIGINS", "https://franes.example/,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://franes.example", "http://localhost:5173"}, cfg.CORSOrigins)
}
