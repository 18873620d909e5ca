package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// clearEnv blanks every variable Load reads so ambient values and .env
// contents from the developer machine don't leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "APP_ENV",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"BACKEND_CORS_ORIGINS",
		"MONGODB_URL", "MONGODB_DB_NAME", "MONGODB_CONNECT_TIMEOUT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"SECRET_KEY", "ACCESS_TOKEN_EXPIRE_MINUTES", "REFRESH_TOKEN_DURATION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "cortexsupport", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)

	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, []byte(testSecret), cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenDuration)
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoad_ShortSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", testSecret)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SERVER_READ_TIMEOUT", "30")
	t.Setenv("MONGODB_URL", "mongodb://mongo:27017")
	t.Setenv("MONGODB_DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("REFRESH_TOKEN_DURATION", "3600")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "prod", cfg.Server.Env)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "testdb", cfg.Mongo.Database)
	assert.Equal(t, "redis:6380", cfg.Redis.Address())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, time.Hour, cfg.Auth.RefreshTokenDuration)
}

func TestLoad_CORSOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", testSecret)
	t.Setenv("BACKEND_CORS_ORIGINS", "http://localhost:3000, https://app.example.com ,,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://localhost:3000",
		"https://app.example.com",
		"https://admin.example.com",
	}, cfg.Server.TrustedOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", testSecret)
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-number")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
}

func TestLoad_LongSecretAccepted(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", strings.Repeat("s", 64))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Auth.JWTSecret, 64)
}
