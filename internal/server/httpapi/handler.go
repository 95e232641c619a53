package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dashauth/internal/common"
	"github.com/dmitrijs2005/dashauth/internal/server/models"
	"github.com/dmitrijs2005/dashauth/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// userPayload is the public projection of an account; the password hash
// never leaves the server.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         userPayload `json:"user"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func publicUser(a *models.Account) userPayload {
	return userPayload{ID: a.ID, Username: a.Username, Email: a.Email}
}

// statusFor maps classified failures to the status codes the sign-in and
// registration pages handle.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrEmailExists), errors.Is(err, common.ErrUsernameTaken):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrInvalidPassword),
		errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, common.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := common.CodeOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		code = "INTERNAL"
		msg = "internal error"
	}
	if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrRefreshTokenExpired) {
		code = "INVALID_TOKEN"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BAD_REQUEST", Message: msg})
}

func (s *HTTPServer) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeBadRequest(w, "username, email and password are required")
		return
	}

	s.logger.Info(ctx, "Registration request", "email", req.Email)

	res, err := s.users.Register(ctx, services.RegisterInput(req))
	if err != nil {
		s.logger.Warn(ctx, "Registration failed", "email", req.Email, "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(ctx, "Registered", "email", req.Email, "id", res.Account.ID)
	writeJSON(w, http.StatusCreated, authResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         publicUser(res.Account),
	})
}

func (s *HTTPServer) SignInHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	res, err := s.users.Login(ctx, services.LoginInput(req))
	if err != nil {
		s.logger.Warn(ctx, "Sign-in failed", "email", req.Email, "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(ctx, "Signed in", "email", req.Email, "id", res.Account.ID)
	writeJSON(w, http.StatusOK, authResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         publicUser(res.Account),
	})
}

func (s *HTTPServer) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.RefreshToken == "" {
		writeBadRequest(w, "refreshToken is required")
		return
	}

	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		s.logger.Warn(ctx, "Refresh failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
