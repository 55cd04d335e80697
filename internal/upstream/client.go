package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/observability/metrics"
	pkgerrors "github.com/pkg/errors"
)

// Redirector is the navigation port invoked when the backend answers 401.
// The web layer supplies an implementation that sends the browser to the
// login view; the client itself never touches routing.
type Redirector interface {
	RequestLogin(ctx context.Context)
}

// Config configures a backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
	// OnUnauthorized is called once per 401 response. Optional.
	OnUnauthorized Redirector
	// Transport overrides the HTTP transport. Defaults to an
	// otelhttp-instrumented http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is the single chokepoint for requests to the diary backend. It
// attaches the bearer token carried by the request context, decodes the
// backend's error envelope, and reports 401s to the navigation port.
type Client struct {
	http           *http.Client
	base           *url.URL
	logger         *zap.Logger
	onUnauthorized Redirector
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, pkgerrors.Errorf("upstream base URL %q is not absolute", cfg.BaseURL)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http:           &http.Client{Transport: transport, Timeout: timeout},
		base:           base,
		logger:         logger,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// Get issues a GET and JSON-decodes the response into out when non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Send(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	reader, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.Send(ctx, http.MethodPost, path, nil, reader, "application/json", out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	reader, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.Send(ctx, http.MethodPut, path, nil, reader, "application/json", out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Send(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// Send is the generic request operation behind the verb helpers. Callers that
// need a non-JSON body (multipart uploads) use it directly with their own
// reader and content type.
func (c *Client) Send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	resp, err := c.roundTrip(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode backend response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return pkgerrors.Wrap(err, "decoding backend response")
	}
	return nil
}

// Fetch issues a GET for a binary resource and returns the body bytes along
// with the response content type.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "reading backend response")
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.base.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "building backend request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// The one persisted value read per outgoing request: the session token
	// placed into the context by the session middleware.
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if pkgerrors.Is(err, context.Canceled) || pkgerrors.Is(err, context.DeadlineExceeded) ||
			pkgerrors.Is(ctx.Err(), context.Canceled) {
			// Cancellation is not an application error.
			c.logger.Info("Backend request cancelled",
				zap.String("method", method),
				zap.String("path", path))
			return nil, err
		}
		c.logger.Error("No response from backend",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}

	metrics.RecordUpstreamRequest(ctx, method, resp.StatusCode, elapsed)

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		respErr := c.decodeError(resp)

		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("Unauthorized backend response",
				zap.String("method", method),
				zap.String("path", path))
			if c.onUnauthorized != nil {
				c.onUnauthorized.RequestLogin(ctx)
			}
		} else {
			c.logger.Error("Backend request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("message", respErr.Message))
		}
		return nil, respErr
	}

	return resp, nil
}

func (c *Client) decodeError(resp *http.Response) *Error {
	respErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.text() != "" {
			respErr.Message = env.text()
		} else {
			respErr.Message = strings.TrimSpace(string(body))
		}
	}
	if respErr.Message == "" {
		respErr.Message = http.StatusText(resp.StatusCode)
	}
	return respErr
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encoding request body")
	}
	return bytes.NewReader(data), nil
}
