package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(50<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.NATSURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.AdminPassword, "no built-in admin password")
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("AUTH_RATE_LIMIT", "5")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
}
