package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/afariz/mediashelf/internal/domain"
)

// authRequest is the password-grant login payload.
type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the successful login response.
type authResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		Email       string `json:"email"`
		AppMetadata struct {
			Role string `json:"role"`
		} `json:"app_metadata"`
	} `json:"user"`
}

// Authenticate performs the password-grant login and installs the session
// token on success. Consumed once at session start.
func (c *Client) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	payload, err := json.Marshal(authRequest{Email: username, Password: password})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to encode login: %w", err)
	}

	reqURL := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("login request failed", "error", err)
		return domain.User{}, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("login rejected", "status", resp.StatusCode)
		return domain.User{}, domain.ErrAuthFailed
	}

	var authResp authResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return domain.User{}, fmt.Errorf("failed to parse login response: %w", err)
	}

	c.SetToken(authResp.AccessToken)

	user := domain.User{Username: authResp.User.Email, Role: domain.RoleUser}
	if authResp.User.AppMetadata.Role == string(domain.RoleAdmin) {
		user.Role = domain.RoleAdmin
	}

	c.logger.Info("authenticated", "user", user.Username, "role", string(user.Role))
	return user, nil
}
