package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/flagx"
	"github.com/dmitrijs2005/dashauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "800ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointAddr    string         `json:"server_endpoint_addr"`
	DatabasePath          string         `json:"database_path"`
	Backend               string         `json:"backend"`
	MockDelay             timex.Duration `json:"mock_delay"`
	SimulateUsernameTaken bool           `json:"simulate_username_taken"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config command-line flags via
// flagx.JsonConfigFlags(); if neither is set, no JSON is loaded. Read or
// unmarshal errors panic: a requested-but-broken config file is not
// something to silently ignore at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.DatabasePath = jc.DatabasePath
	cfg.Backend = jc.Backend
	cfg.MockDelay = time.Duration(jc.MockDelay.Duration)
	cfg.SimulateUsernameTaken = jc.SimulateUsernameTaken
}
