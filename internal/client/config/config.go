// Package config handles configuration for the auth client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Backend selects which AuthProvider the client runs against.
const (
	BackendMock = "mock"
	BackendHTTP = "http"
)

// Config holds runtime settings for the auth client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the auth backend (http backend only).
//   - DatabasePath: path of the local SQLite database file.
//   - Backend: "mock" for the local in-process backend, "http" for the real one.
//   - MockDelay: artificial latency of the mock backend.
//   - SimulateUsernameTaken: when true, the mock rejects duplicate usernames.
type Config struct {
	ServerEndpointAddr    string
	DatabasePath          string
	Backend               string
	MockDelay             time.Duration
	SimulateUsernameTaken bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.DatabasePath = "dashauth.db"
	c.Backend = BackendMock
	c.MockDelay = 800 * time.Millisecond
	c.SimulateUsernameTaken = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
