package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// HTTPAuthService is an AuthProvider that talks to the auth backend over
// its JSON API. It mirrors the MockAuthService contract, so the screens
// can be pointed at either.
type HTTPAuthService struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAuthService(baseURL string) *HTTPAuthService {
	return &HTTPAuthService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// post sends body as JSON and decodes a Session from a 2xx response.
// Non-2xx responses are translated into the sentinel error matching the
// body's error code, so callers handle both providers identically.
func (h *HTTPAuthService) post(ctx context.Context, path string, body any) (*models.Session, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		if sentinel := common.ErrorForCode(e.Error); sentinel != nil {
			return nil, sentinel
		}
		return nil, fmt.Errorf("%s: %s", e.Error, e.Message)
	}

	var s models.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &s, nil
}

func (h *HTTPAuthService) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	return h.post(ctx, "/api/auth/register", registerRequest{Username: username, Email: email, Password: password})
}

func (h *HTTPAuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return h.post(ctx, "/api/auth/signin", signInRequest{Email: email, Password: password})
}
