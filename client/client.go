// Package client is the HTTP adapter for the dashboard API: every request
// goes out through one fixed base URL, with the bearer token injected from
// the session and responses decoded from the uniform API envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdrianislam0or1/admin-dashboard/errors"
	"github.com/mdrianislam0or1/admin-dashboard/log"
)

const (
	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failure response is read when the
	// envelope cannot be decoded.
	maxErrorBody = 1 << 20
)

// TokenProvider supplies the current access token; an empty string means
// unauthenticated. The session store satisfies this.
type TokenProvider interface {
	Token() string
}

// Client performs authenticated JSON requests against the dashboard API.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
	tokens  TokenProvider
	logger  *log.Logger
	retries int
	metrics *Metrics
}

// New creates a client for the given base URL. A cookie jar is always
// installed so auxiliary session cookies set by the API are sent back.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.BadRequest("invalid base URL %q: %v", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.BadRequest("base URL %q must be absolute", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Internal("create cookie jar: %v", err)
	}

	c := &Client{
		baseURL: u,
		hc: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		logger:  log.G,
		retries: 1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do performs a request against path (relative to the base URL) and decodes
// the JSON response into out when out is non-nil. HTTP failure statuses come
// back as coded errors carrying the server message; transport failures come
// back as network errors, retried once for safe methods.
func (c *Client) Do(ctx context.Context, method, path string, params Params, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("marshal request body: %v", err)
		}
		payload = data
	}

	target := c.requestURL(path, params)
	requestID := uuid.NewString()

	attempts := 1
	if c.retries > 0 && retryable(method) {
		attempts += c.retries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := c.send(ctx, method, target, requestID, payload)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			c.logger.Warn().
				Str("method", method).
				Str("path", path).
				Str("request_id", requestID).
				Err(err).
				Msg("request transport failure")
			continue
		}
		return c.handleResponse(resp, method, path, out)
	}

	return errors.Network(lastErr, "no response from server")
}

func (c *Client) send(ctx context.Context, method, target, requestID string, payload []byte) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if c.metrics != nil {
		c.metrics.observe(method, resp, err, time.Since(start))
	}
	return resp, err
}

func (c *Client) handleResponse(resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Internal("decode response: %v", err)
		}
	}
	return nil
}

// statusError turns a failure response into a coded error, preferring the
// server-provided envelope message over the raw body.
func (c *Client) statusError(resp *http.Response, method, path string) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr != nil {
		return errors.New(resp.StatusCode, "failed to read error body: %v", readErr)
	}

	message := http.StatusText(resp.StatusCode)
	var env Envelope[json.RawMessage]
	if json.Unmarshal(body, &env) == nil {
		switch {
		case env.Message != "":
			message = env.Message
		case env.Error != "":
			message = env.Error
		}
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		message = trimmed
	}

	return errors.New(resp.StatusCode, "%s", message).WithMetadata(map[string]string{
		"method": method,
		"path":   path,
	})
}

func (c *Client) requestURL(path string, params Params) string {
	target := c.baseURL.String() + path
	if query := params.Encode(); query != "" {
		target += "?" + query
	}
	return target
}

// retryable reports whether a method is safe to replay after a transport
// failure. Mutations are never retried: the first attempt may have reached
// the server.
func retryable(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params Params, out any) error {
	return c.Do(ctx, http.MethodGet, path, params, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}
