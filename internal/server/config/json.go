package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/flagx"
	"github.com/dmitrijs2005/dashauth/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	LoginMaxFailures             int            `json:"login_max_failures"`
	LoginLockDuration            timex.Duration `json:"login_lock_duration"`
	LoginAttemptWindow           timex.Duration `json:"login_attempt_window"`
	LoginMaxAttempts             int            `json:"login_max_attempts"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; if neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics: a requested-but-broken config file is
// not something to silently ignore at startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	config.LoginMaxFailures = c.LoginMaxFailures
	config.LoginLockDuration = time.Duration(c.LoginLockDuration.Duration)
	config.LoginAttemptWindow = time.Duration(c.LoginAttemptWindow.Duration)
	config.LoginMaxAttempts = c.LoginMaxAttempts
}
