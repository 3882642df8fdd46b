package board

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type sessionService struct {
	client *Client
}

// NewSessionService returns a Session that logs in against the REST API.
func NewSessionService(client *Client) *sessionService {
	return &sessionService{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token. It works without a stored token.
func (s *sessionService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	var out loginResponse
	if err := s.client.do(ctx, http.MethodPost, apiPrefix+"/accounts/login", loginRequest{Email: email, Password: password}, &out, false); err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("logging in: empty token in response")
	}
	return out.AccessToken, nil
}
