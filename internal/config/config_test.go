package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage/filesystem"
	"github.com/mmynk/nutritrack/internal/storage/memory"
	"github.com/mmynk/nutritrack/internal/storage/sqlite"
)

// clearEnv blanks every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "STATIC_PATH", "IMAGES_PATH", "ALLOWED_ORIGINS",
		"STORAGE_BACKEND", "DATA_DIR", "JWT_SECRET", "TOKEN_TTL_DAYS", "SECURE_COOKIE",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "FOODDB_BASE_URL", "FOODDB_TIMEOUT_SECONDS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsPerEnvironment(t *testing.T) {
	tests := []struct {
		env     string
		backend string
	}{
		{EnvTest, BackendMemory},
		{EnvDevelopment, BackendFilesystem},
		{EnvProduction, BackendSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("JWT_SECRET", "secret")

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.backend, cfg.Storage.Backend)
			assert.Equal(t, 8080, cfg.Server.Port)
			assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
		})
	}
}

func TestLoadMissingSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", EnvProduction)

	_, err := Load("")
	assert.ErrorIs(t, err, models.ErrInfrastructure)
}

func TestLoadTestEnvGetsSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", EnvTest)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: production
server:
  port: 9000
  allowed_origins: [https://a.example]
storage:
  backend: filesystem
  data_dir: /tmp/nt
auth:
  jwt_secret: from-yaml
  token_ttl_days: 3
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendFilesystem, cfg.Storage.Backend)
	assert.Equal(t, "from-yaml", cfg.Auth.JWTSecret)
	assert.Equal(t, 3*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := &Config{Env: "staging"}
	cfg.Auth.JWTSecret = "x"
	cfg.applyDefaults()
	assert.ErrorIs(t, cfg.Validate(), models.ErrInfrastructure)

	cfg = &Config{Env: EnvTest}
	cfg.Storage.Backend = "mongo"
	cfg.applyDefaults()
	assert.ErrorIs(t, cfg.Validate(), models.ErrInfrastructure)
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		check   func(t *testing.T, v any)
	}{
		{BackendMemory, func(t *testing.T, v any) { assert.IsType(t, &memory.Store{}, v) }},
		{BackendFilesystem, func(t *testing.T, v any) { assert.IsType(t, &filesystem.Store{}, v) }},
		{BackendSQLite, func(t *testing.T, v any) { assert.IsType(t, &sqlite.SQLiteStore{}, v) }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &Config{Env: EnvTest, Storage: StorageConfig{Backend: tt.backend, DataDir: dir}}
			backend, err := cfg.OpenStorage()
			require.NoError(t, err)
			defer backend.Close()
			tt.check(t, backend)
		})
	}
}
