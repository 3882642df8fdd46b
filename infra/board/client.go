package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/infra/auth"
)

const apiPrefix = "/api/v1"

// Client is a thin HTTP wrapper for the board REST API.
// It handles base URL construction, JSON bodies and bearer token injection.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	timeout       time.Duration
}

// NewClient creates a board API client. A zero timeout disables the per-request deadline.
func NewClient(baseURL string, tp auth.TokenProvider, timeout time.Duration) *Client {
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{},
		timeout:       timeout,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET request, attaching the token when one exists.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, true)
}

// Put performs an authenticated PUT request.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out, true)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, needAuth bool) error {
	token, err := c.tokenProvider.AccessToken()
	switch {
	case errors.Is(err, auth.ErrNoToken):
		if needAuth {
			return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
		}
		token = ""
	case err != nil:
		return fmt.Errorf("auth: %w", err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// putObject sends raw bytes to an absolute URL such as a presigned upload
// target. No bearer token is attached: the URL itself carries the grant.
func (c *Client) putObject(ctx context.Context, target, contentType string, size int64, r io.Reader) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, r)
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		u, _ := url.Parse(target)
		path := target
		if u != nil {
			path = u.Path
		}
		return &APIError{Method: http.MethodPut, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return nil
}
