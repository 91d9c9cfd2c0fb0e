package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/state"
)

// LoginEndpoint issues access tokens.
const LoginEndpoint = "/api/auth/login"

// ErrLoginFailed is returned when the backend does not hand out a token.
var ErrLoginFailed = errors.New("api: login failed")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

// Login exchanges credentials for an access token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := c.Post(ctx, LoginEndpoint, loginRequest{Email: email, Password: password})
	if body == nil {
		return ErrLoginFailed
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		if resp.Error != "" {
			return fmt.Errorf("%w: %s", ErrLoginFailed, resp.Error)
		}
		return ErrLoginFailed
	}

	if err := state.SetToken(c.store, resp.AccessToken); err != nil {
		c.log.Error(otel.KindStateError, comp, err)
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout clears the stored token.
func (c *Client) Logout() error {
	return state.ClearToken(c.store)
}
