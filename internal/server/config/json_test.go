package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":              "www.example:9000",
		"database_dsn":                    "postgres://example/auth",
		"secret_key":                      "my_secret_key",
		"access_token_validity_duration":  "1m",
		"refresh_token_validity_duration": "3m",
		"login_max_failures":              4,
		"login_lock_duration":             "10m",
		"login_attempt_window":            "30s",
		"login_max_attempts":              20,
	})

	os.Args = []string{"testbin", "-config", path}

	config := &Config{}
	parseJson(config)

	assert.Equal(t, "www.example:9000", config.EndpointAddrHTTP)
	assert.Equal(t, "postgres://example/auth", config.DatabaseDSN)
	assert.Equal(t, "my_secret_key", config.SecretKey)
	assert.Equal(t, time.Minute, config.AccessTokenValidityDuration)
	assert.Equal(t, 3*time.Minute, config.RefreshTokenValidityDuration)
	assert.Equal(t, 4, config.LoginMaxFailures)
	assert.Equal(t, 10*time.Minute, config.LoginLockDuration)
	assert.Equal(t, 30*time.Second, config.LoginAttemptWindow)
	assert.Equal(t, 20, config.LoginMaxAttempts)
}

func Test_parseJson_NoFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	config := &Config{}
	config.LoadDefaults()
	before := *config
	parseJson(config)

	assert.Equal(t, before, *config)
}

func Test_parseJson_PanicsOnMissingFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "absent.json")}

	config := &Config{}
	require.Panics(t, func() { parseJson(config) })
}
