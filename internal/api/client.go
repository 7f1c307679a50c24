// Package api provides the HTTP client for the 42 projects backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// CookiePath is where the session cookie jar is persisted between runs.
	// Empty disables persistence (tests).
	CookiePath string
	Debug      bool
	Timeout    time.Duration
}

// Client wraps a resty client for the backend API. The session credential is
// a backend-issued cookie held in the transport's jar; application code never
// touches it.
type Client struct {
	http *resty.Client
	jar  *persistentJar
}

// New creates a new API client.
func New(opts Options) (*Client, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	jar := &persistentJar{Jar: inner, path: opts.CookiePath, baseURL: opts.BaseURL}
	if err := jar.load(); err != nil {
		// A broken jar file means a fresh session, not a hard failure.
		if fresh, jarErr := cookiejar.New(nil); jarErr == nil {
			jar.Jar = fresh
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	r := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetDebug(opts.Debug)

	return &Client{http: r, jar: jar}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// GetAuthURL asks the backend for the identity provider authorization URL.
func (c *Client) GetAuthURL(ctx context.Context) (string, error) {
	var result AuthURLResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/auth/login/")
	if err != nil {
		return "", fmt.Errorf("failed to fetch auth URL: %w", err)
	}
	if resp.IsError() {
		return "", parseError(resp.StatusCode(), resp.Body())
	}
	if result.AuthURL == "" {
		return "", fmt.Errorf("backend returned an empty auth URL")
	}

	return result.AuthURL, nil
}

// GetCurrentUser returns the authenticated user, or an *Error with status 401
// when the ambient session credential is missing or expired.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/auth/user/")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	if resp.IsError() {
		return nil, parseError(resp.StatusCode(), resp.Body())
	}

	return &user, nil
}

// Logout invalidates the server-side session. Callers treat failure as soft:
// local session state is dropped regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post("/auth/logout/")
	if err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	if resp.IsError() {
		return parseError(resp.StatusCode(), resp.Body())
	}

	return nil
}

// ListProjects returns the full current project collection. The backend may
// answer with a bare array or a paginated envelope; both are accepted.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/projects/")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	if resp.IsError() {
		return nil, parseError(resp.StatusCode(), resp.Body())
	}

	body := resp.Body()

	var projects []Project
	if err := json.Unmarshal(body, &projects); err == nil {
		return projects, nil
	}

	var envelope projectsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode projects response: %w", err)
	}

	return envelope.Results, nil
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var project Project

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&project).
		Get(fmt.Sprintf("/projects/%d/", id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, parseError(resp.StatusCode(), resp.Body())
	}

	return &project, nil
}

// SaveSession flushes the cookie jar to disk so the session survives the
// process.
func (c *Client) SaveSession() error {
	return c.jar.save()
}

// DropSession discards the local session credential, in memory and on disk.
func (c *Client) DropSession() error {
	return c.jar.drop()
}
