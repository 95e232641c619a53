// Package cli implements the interactive client: the registration,
// sign-in and dashboard screens, glued together by a small REPL.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/dashauth/internal/client/config"
	"github.com/dmitrijs2005/dashauth/internal/client/credstore"
	"github.com/dmitrijs2005/dashauth/internal/client/forms"
	"github.com/dmitrijs2005/dashauth/internal/client/localstore"
	"github.com/dmitrijs2005/dashauth/internal/client/services"
	"github.com/dmitrijs2005/dashauth/internal/client/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	sessions *session.Holder
	register *forms.RegisterController
	signIn   *forms.SignInController
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	db, err := localstore.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	storage := localstore.NewSQLiteRepository(db)
	sessions := session.NewHolder(storage)
	auth := newAuthProvider(cfg, storage)

	return &App{
		config:   cfg,
		db:       db,
		sessions: sessions,
		register: forms.NewRegisterController(auth, sessions),
		signIn:   forms.NewSignInController(auth, sessions),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// newAuthProvider picks the backend: the real HTTP API, or the local mock
// sharing the same storage as the session holder.
func newAuthProvider(cfg *config.Config, storage localstore.Repository) services.AuthProvider {
	if cfg.Backend == config.BackendHTTP {
		return services.NewHTTPAuthService(cfg.ServerEndpointAddr)
	}

	opts := []services.MockOption{services.WithDelay(cfg.MockDelay)}
	if cfg.SimulateUsernameTaken {
		opts = append(opts, services.WithUsernameTaken())
	}
	return services.NewMockAuthService(credstore.NewStore(storage), opts...)
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	runREPL(ctx, a, func() string { return a.status(ctx) }, bufio.NewScanner(os.Stdin))
}

func (a *App) isSignedIn(ctx context.Context) bool {
	s, err := a.sessions.Current(ctx)
	return err == nil && s != nil
}

// status is shown in the REPL prompt.
func (a *App) status(ctx context.Context) string {
	s, err := a.sessions.Current(ctx)
	if err != nil || s == nil {
		return "anonymous"
	}
	return s.User.Username
}
