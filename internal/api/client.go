// Package api is the session client for the Healix backend. It owns
// the bearer-token pair, attaches it to every request, and runs exactly
// one single-flight refresh-and-retry cycle when a request comes back
// 401. All failures surface as tagged *Error values, never panics.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenStore persists the bearer-token pair between runs
type TokenStore interface {
	Tokens(ctx context.Context) (access, refresh string)
	SetTokens(ctx context.Context, access, refresh string) error
	SetAccessToken(ctx context.Context, access string) error
	ClearTokens(ctx context.Context)
}

// Client performs authenticated requests against the Healix backend
type Client struct {
	http    *resty.Client
	tokens  TokenStore
	logger  *zap.Logger
	refresh singleflight.Group
}

// New creates a Client for the given base URL
func New(baseURL string, timeout time.Duration, tokens TokenStore, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		tokens: tokens,
		logger: logger,
	}
}

// Authenticated reports whether an access token is stored
func (c *Client) Authenticated(ctx context.Context) bool {
	access, _ := c.tokens.Tokens(ctx)
	return access != ""
}

// Register creates an account and stores the issued token pair
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*TokenPair, error) {
	var out authResponse
	var failure envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&failure).
		Post("/register")
	if err != nil {
		c.logger.Error("registration request failed", zap.Error(err))
		return nil, networkError(err)
	}
	if resp.IsError() || !out.Success {
		return nil, applicationError(resp.StatusCode(), firstMessage(out.Message, failure.Message, "registration failed"))
	}

	pair := &TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	if pair.AccessToken != "" && pair.RefreshToken != "" {
		if err := c.tokens.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to store tokens: %w", err)
		}
	}
	c.logger.Info("registration succeeded", zap.String("email", req.Email))
	return pair, nil
}

// Login authenticates with email and password and stores the issued
// token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var out authResponse
	var failure envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&failure).
		Post("/login")
	if err != nil {
		c.logger.Error("login request failed", zap.Error(err))
		return nil, networkError(err)
	}
	if resp.IsError() || !out.Success || !out.Authenticated {
		return nil, applicationError(resp.StatusCode(), firstMessage(out.Message, failure.Message, "login failed"))
	}

	pair := &TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	if pair.AccessToken != "" && pair.RefreshToken != "" {
		if err := c.tokens.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to store tokens: %w", err)
		}
	}
	c.logger.Info("login succeeded", zap.String("email", email))
	return pair, nil
}

// Logout clears the stored tokens and notifies the backend best-effort
func (c *Client) Logout(ctx context.Context) {
	c.tokens.ClearTokens(ctx)
	if _, err := c.http.R().SetContext(ctx).Post("/logout"); err != nil {
		c.logger.Debug("backend logout notification failed", zap.Error(err))
	}
}

// CurrentUser fetches the authoritative remote profile
func (c *Client) CurrentUser(ctx context.Context) (*RemoteUser, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "", "failed to get user"))
	}
	return out.User, nil
}

// do runs one authenticated request. On 401 it refreshes the access
// token through a single-flight gate and retries once; a second 401 or
// a failed refresh surfaces as an auth error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	access, _ := c.tokens.Tokens(ctx)

	resp, failure, err := c.attempt(ctx, method, path, body, out, access)
	if err != nil {
		c.logger.Error("request failed", zap.String("path", path), zap.Error(err))
		return networkError(err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && access != "" {
		c.logger.Info("received 401, refreshing access token", zap.String("path", path))
		refreshed, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		resp, failure, err = c.attempt(ctx, method, path, body, out, refreshed)
		if err != nil {
			return networkError(err)
		}
		if resp.StatusCode() == http.StatusUnauthorized {
			return authError(failure.Message)
		}
	}

	if resp.IsError() {
		return applicationError(resp.StatusCode(), failure.Message)
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, method, path string, body, out any, access string) (*resty.Response, *envelope, error) {
	failure := &envelope{}
	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(failure)
	if body != nil {
		req.SetBody(body)
	}
	if access != "" {
		req.SetAuthToken(access)
	}
	resp, err := req.Execute(method, path)
	return resp, failure, err
}

// refreshAccessToken exchanges the refresh token for a new access
// token. Concurrent callers collapse onto one backend call.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		_, refresh := c.tokens.Tokens(ctx)
		if refresh == "" {
			return nil, authError("no refresh token")
		}

		var out refreshResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(refresh).
			SetResult(&out).
			SetError(&envelope{}).
			Post("/refresh")
		if err != nil {
			return nil, networkError(err)
		}
		if resp.IsError() || !out.Success || out.AccessToken == "" {
			c.logger.Warn("token refresh rejected", zap.Int("status", resp.StatusCode()))
			return nil, authError("token refresh failed")
		}

		if err := c.tokens.SetAccessToken(ctx, out.AccessToken); err != nil {
			return nil, fmt.Errorf("failed to store refreshed token: %w", err)
		}
		c.logger.Info("access token refreshed")
		return out.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func firstMessage(candidates ...string) string {
	for _, m := range candidates {
		if m != "" {
			return m
		}
	}
	return ""
}
