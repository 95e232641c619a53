// Package httpapi exposes the authentication service over HTTP.
// Routes:
//
//	POST /api/auth/register
//	POST /api/auth/signin
//	POST /api/auth/refresh
//	GET  /api/health
//
// Success responses carry {accessToken, refreshToken, user}; failures carry
// a non-2xx status with {"error": <code>, "message": <text>}.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/logging"
	"github.com/dmitrijs2005/dashauth/internal/server/services"
	"github.com/gorilla/mux"
)

// UserService is the slice of the auth service the transport needs; the
// concrete implementation lives in the services package.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type HTTPServer struct {
	address string
	users   UserService
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us UserService) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
	}
}

// Router builds the mux router; split out so handler tests can drive it
// through httptest without binding a socket.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", s.RegisterHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signin", s.SignInHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", s.RefreshHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/health", s.HealthHandler).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
