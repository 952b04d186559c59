package siteflow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/siteflow-tools/siteflow-mcp/pkg/api"
	"github.com/siteflow-tools/siteflow-mcp/pkg/log"
)

// Authenticate performs the credential exchange and caches the returned
// bearer token. A single attempt per invocation; failures surface as
// *AuthError without touching the cached state
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticateLocked(ctx)
}

// ensureToken returns a currently valid bearer token, transparently
// re-authenticating when no token is cached, the cached one has expired,
// or it is within the configured leeway of expiring
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokenValidLocked() {
		return c.token, nil
	}
	if err := c.authenticateLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

func (c *Client) tokenValidLocked() bool {
	if c.token == "" {
		return false
	}
	if c.expiry.IsZero() {
		// Server issued no expiry; the token lives until the process
		// exits or re-authentication replaces it
		return true
	}
	return time.Now().Add(c.leeway).Before(c.expiry)
}

func (c *Client) authenticateLocked(ctx context.Context) error {
	body, err := json.Marshal(api.AuthRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return err
	}

	resp, err := c.roundTrip(
		ctx, http.MethodPost, c.baseURL+authPath, body, "",
	)
	if err != nil {
		c.logger.Error("Authentication request failed", log.Error(err))
		return &AuthError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &AuthError{Err: err}
	}

	if resp.StatusCode < http.StatusOK ||
		resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("Authentication rejected",
			log.Status(resp.StatusCode),
			log.ErrorString(string(respBody)))
		return &AuthError{
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	var auth api.AuthResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return &AuthError{Err: err}
	}
	if auth.AccessToken == "" {
		return &AuthError{Err: ErrNoAccessToken}
	}

	c.token = auth.AccessToken
	c.expiry = time.Time{}
	if auth.ExpiresIn > 0 {
		c.expiry = time.Now().Add(
			time.Duration(auth.ExpiresIn) * time.Second,
		)
	}

	c.logger.Info("Authenticated with Siteflow",
		log.ProjectID(c.projectID))
	return nil
}
