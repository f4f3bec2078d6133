package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/gymbuddy-web/internal/config"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  port: 9090
  app_name: Test Gym
  env: PROD
api:
  base_url: http://api.test
  timeout: 5s
session:
  store: redis
  max_age: 1h
redis:
  addr: redis.test:6379
  db: 2
security:
  csrf_key: 000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f
  csrf_enabled: false
`

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gymbuddy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "GymBuddy", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, config.DefaultAPIBaseURL, c.GetAPIBaseURL())
	require.Zero(t, c.GetAPITimeout())
	require.Equal(t, config.SessionStoreMemory, c.GetSessionStore())
	require.Equal(t, 7*24*time.Hour, c.GetSessionMaxAge())
	require.Equal(t, "gymbuddy_session", c.GetSessionCookieName())
	require.True(t, c.GetCSRFEnabled())
	require.False(t, c.GetSecureCookies())
	require.Equal(t, []string{"localhost:8080"}, c.GetTrustedOrigins())

	key, err := c.GetCSRFKey()
	require.NoError(t, err)
	require.Len(t, key, 32)
}

func TestLoadFromFile(t *testing.T) {
	c, err := config.Load(writeConfigFile(t, testConfigYAML))
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "Test Gym", c.GetAppName())
	require.Equal(t, "PROD", c.GetEnv())
	require.True(t, c.GetSecureCookies())
	require.Equal(t, "http://api.test", c.GetAPIBaseURL())
	require.Equal(t, 5*time.Second, c.GetAPITimeout())
	require.Equal(t, config.SessionStoreRedis, c.GetSessionStore())
	require.Equal(t, time.Hour, c.GetSessionMaxAge())
	require.Equal(t, "redis.test:6379", c.GetRedisAddr())
	require.Equal(t, 2, c.GetRedisDB())
	require.False(t, c.GetCSRFEnabled())

	key, err := c.GetCSRFKey()
	require.NoError(t, err)
	require.Equal(t, byte(0x1f), key[31])
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("PORT", ":7070")
	t.Setenv("GYMBUDDY_API_URL", "http://override.test")
	t.Setenv("GYMBUDDY_API_TIMEOUT", "not-a-duration")

	c, err := config.Load(writeConfigFile(t, testConfigYAML))
	require.NoError(t, err)

	require.Equal(t, ":7070", c.GetPort())
	require.Equal(t, "http://override.test", c.GetAPIBaseURL())
	require.Zero(t, c.GetAPITimeout(), "an invalid duration falls back to the default")
	require.Equal(t, "Test Gym", c.GetAppName())
}

func TestCSRFKey(t *testing.T) {
	t.Run("required in PROD", func(t *testing.T) {
		t.Setenv("ENV", "PROD")
		_, err := config.New().GetCSRFKey()
		require.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Setenv("CSRF_KEY", "abcd")
		_, err := config.New().GetCSRFKey()
		require.Error(t, err)
	})

	t.Run("not hex", func(t *testing.T) {
		t.Setenv("CSRF_KEY", "zz")
		_, err := config.New().GetCSRFKey()
		require.Error(t, err)
	})
}

func TestTrustedOrigins(t *testing.T) {
	t.Run("explicit list", func(t *testing.T) {
		t.Setenv("TRUSTED_ORIGINS", "gym.example.com, www.gym.example.com,")
		require.Equal(t, []string{"gym.example.com", "www.gym.example.com"}, config.New().GetTrustedOrigins())
	})

	t.Run("base url host", func(t *testing.T) {
		t.Setenv("TRUSTED_ORIGINS", "")
		t.Setenv("BASE_URL", "https://gym.example.com:8443/app")
		c := config.New()
		require.Equal(t, "https://gym.example.com:8443/app", c.GetBaseURL())
		require.Equal(t, []string{"gym.example.com:8443"}, c.GetTrustedOrigins())
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
