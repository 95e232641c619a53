package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the auth backend (e.g., "http://localhost:8080")
//	-p string   path of the local database file
//	-b string   backend: "mock" or "http"
//	-m int      mock backend delay, milliseconds
//
// The function filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-b", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the auth backend")
	fs.StringVar(&cfg.DatabasePath, "p", cfg.DatabasePath, "path of the local database file")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "backend: mock or http")
	mockDelay := fs.Int("m", int(cfg.MockDelay.Milliseconds()), "mock backend delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.MockDelay = time.Duration(*mockDelay) * time.Millisecond
}
