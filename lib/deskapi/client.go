// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opsdesk-project/opsdesk/lib/clock"
)

// defaultBaseURL is where the ticket backend listens in the standard
// single-host deployment.
const defaultBaseURL = "http://localhost:8000"

// maxResponseBytes caps how much of a response body the client reads.
// Export downloads stream and are exempt; every JSON endpoint returns
// far less than this.
const maxResponseBytes = 32 << 20

// dbRetryDelay is how long the client waits before its single retry
// when the backend reports its database is still warming up.
const dbRetryDelay = 2 * time.Second

// Config holds configuration for creating a ticket backend Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "http://localhost:8000".
	BaseURL string

	// Credentials is the base64-encoded "username:password" pair
	// sent as HTTP Basic authorization. Required.
	Credentials string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests for deterministic backoff.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the ticket backend's REST API. It
// normalizes the backend's drifting field names on the way in, retries
// once when the database is still warming up, and turns error bodies
// into *APIError values.
type Client struct {
	baseURL     string
	credentials string
	httpClient  *http.Client
	clock       clock.Clock
	logger      *slog.Logger
}

// NewClient creates a ticket backend client from the given
// configuration. Returns an error if no credentials are set.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("deskapi: base URL must be http or https (got %q)", baseURL)
	}

	if config.Credentials == "" {
		return nil, fmt.Errorf("deskapi: no credentials configured (run the login command first)")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     baseURL,
		credentials: config.Credentials,
		httpClient:  httpClient,
		clock:       clk,
		logger:      logger,
	}, nil
}

// BaseURL returns the backend root this client talks to.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// do executes an authenticated backend request. The path is relative
// to the base URL (e.g., "/api/requests"). Non-GET bodies are
// JSON-encoded from requestBody (pass nil for no body).
//
// When the backend responds 503 with its "database not ready" detail,
// the request is retried once after a short backoff: the backend
// connects to its database lazily on startup and a console launched
// alongside it routinely hits that window.
//
// Returns the raw response body. On non-2xx responses, returns an
// *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	return client.doWithRetry(ctx, method, path, requestBody, false)
}

func (client *Client) doWithRetry(ctx context.Context, method, path string, requestBody any, isRetry bool) ([]byte, error) {
	response, err := client.doRaw(ctx, method, path, requestBody)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("deskapi: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiError := parseAPIErrorFromBody(response.StatusCode, body)
		if !isRetry && response.StatusCode == http.StatusServiceUnavailable {
			client.logger.Info("backend database not ready, backing off",
				"delay", dbRetryDelay,
				"method", method,
				"path", path,
			)
			select {
			case <-client.clock.After(dbRetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return client.doWithRetry(ctx, method, path, requestBody, true)
		}
		return nil, apiError
	}

	return body, nil
}

// doRaw executes an HTTP request with Basic authorization but without
// response parsing. The caller must close the response body. Used by
// do and by Download, which streams the body instead of buffering it.
func (client *Client) doRaw(ctx context.Context, method, path string, requestBody any) (*http.Response, error) {
	url := client.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("deskapi: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("deskapi: creating request: %w", err)
	}

	request.Header.Set("Authorization", "Basic "+client.credentials)
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("deskapi: %s %s: %w", method, url, err)
	}
	return response, nil
}

// get is a convenience method for GET requests returning JSON.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("deskapi: decoding %s response: %w", path, err)
	}
	return nil
}

// post is a convenience method for POST requests returning JSON. Pass
// a nil result to discard the response body.
func (client *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("deskapi: decoding %s response: %w", path, err)
	}
	return nil
}

// patch is a convenience method for PATCH requests. Pass a nil result
// to discard the response body.
func (client *Client) patch(ctx context.Context, path string, requestBody any, result any) error {
	body, err := client.do(ctx, http.MethodPatch, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("deskapi: decoding %s response: %w", path, err)
	}
	return nil
}
