// Package idp implements the IdentityProvider port against a GoTrue-style
// identity provider's REST admin API.
package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/loopkey/identity-relay/internal/api/metrics"
	"github.com/loopkey/identity-relay/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach the provider's admin API.
type Config struct {
	// BaseURL is the provider endpoint, e.g. https://auth.example.com.
	BaseURL string
	// ServiceKey is the privileged server-side credential. It is sent on
	// admin operations only, never derived from or exposed to callers.
	ServiceKey string
	// Timeout bounds every outbound call. Defaults to defaultTimeout.
	Timeout time.Duration
}

// Client is the single long-lived handle to the provider, constructed once at
// process start and shared across requests. It holds no mutable state, so
// concurrent use needs no locking.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{Timeout: timeout},
	}
}

// ResolveToken asks the provider to resolve a caller bearer token to an
// identity. A provider response rejecting the token maps to
// ErrUnauthenticated; failure to reach the provider is returned as-is so the
// caller can treat it as an infrastructure fault.
func (c *Client) ResolveToken(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.do("resolve_token", req)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var identity domain.Identity
		if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
			return nil, fmt.Errorf("resolve token: decode response: %w", err)
		}
		return &identity, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUnauthenticated
	default:
		return nil, fmt.Errorf("resolve token: provider returned %d", resp.StatusCode)
	}
}

type createUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	Metadata     map[string]any `json:"user_metadata,omitempty"`
}

// CreateUser forwards an account creation to the provider's privileged create
// endpoint with the email pre-confirmed.
func (c *Client) CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.ManagedUser, error) {
	body, err := json.Marshal(createUserRequest{
		Email:        input.Email,
		Password:     input.Password,
		EmailConfirm: true,
		Metadata:     input.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: encode request: %w", err)
	}

	resp, err := c.adminDo(ctx, "create_user", http.MethodPost, "/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providerError(resp)
	}

	var user domain.ManagedUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("create user: decode response: %w", err)
	}
	return &user, nil
}

type listUsersResponse struct {
	Users []domain.ManagedUser `json:"users"`
}

// ListUsers fetches the provider's default page of accounts. No pagination
// parameters are forwarded.
func (c *Client) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	resp, err := c.adminDo(ctx, "list_users", http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providerError(resp)
	}

	var out listUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list users: decode response: %w", err)
	}
	return out.Users, nil
}

// DeleteUser forwards a deletion by identifier to the provider.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.adminDo(ctx, "delete_user", http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return providerError(resp)
	}
	return nil
}

// Ping checks provider reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("provider ping: %w", err)
	}
	resp, err := c.do("ping", req)
	if err != nil {
		return fmt.Errorf("provider ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider ping: status %d", resp.StatusCode)
	}
	return nil
}

// adminDo performs a privileged admin-API call using the service-role key.
func (c *Client) adminDo(ctx context.Context, call, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(call, req)
}

// do executes a request and records its round-trip latency.
func (c *Client) do(call string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
	return resp, err
}

// providerError extracts the provider's own message from an error response.
// The message is surfaced verbatim; the relay does not enumerate provider
// error codes.
func providerError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, msg := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if msg != "" {
				return domain.NewProviderError(msg)
			}
		}
	}
	return domain.NewProviderError(fmt.Sprintf("provider returned status %d", resp.StatusCode))
}
