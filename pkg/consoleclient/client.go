/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package consoleclient talks to the console backend that fronts the edge
// devices: remote configurations, processing control, stored inference
// history, device lookup, app config and the live inference stream.
package consoleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 2048
	streamPath         = "processing/ws"
)

var (
	ErrNotFound  = models.ErrNotFound
	ErrParse     = models.ErrParse
	ErrTransport = models.ErrTransport

	errBaseURLRequired = errors.New("backend base url is required")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap classifies the response: 404 is ErrNotFound, anything else ErrTransport.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}

	return ErrTransport
}

// Config controls how the client reaches the backend.
type Config struct {
	BaseURL   string
	StreamURL string
	APIKey    string
	Timeout   time.Duration
	Logger    logger.Logger
	HTTP      *http.Client
}

// Client is the HTTP implementation of every backend collaborator of the
// session controller.
type Client struct {
	baseURL   *url.URL
	streamURL string
	apiKey    string
	client    *http.Client
	logger    logger.Logger
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	streamURL := cfg.StreamURL
	if streamURL == "" {
		streamURL = DefaultStreamURL(parsed)
	}

	return &Client{
		baseURL:   parsed,
		streamURL: streamURL,
		apiKey:    cfg.APIKey,
		client:    httpClient,
		logger:    log,
	}, nil
}

// DefaultStreamURL derives the websocket endpoint from the backend URL.
func DefaultStreamURL(base *url.URL) string {
	u := *base

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = path.Join("/", u.Path, streamPath)
	u.RawQuery = ""

	return u.String()
}

// endpoint joins segments under the base path. A trailing slash on the last
// segment is kept.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := *c.baseURL

	u.Path = path.Join(append([]string{"/", u.Path}, segments...)...)
	u.RawPath = ""

	if strings.HasSuffix(segments[len(segments)-1], "/") {
		u.Path += "/"
	}

	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// do sends body (marshaled unless nil) and decodes a 2xx response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return &StatusError{
			Method: method,
			Path:   req.URL.Path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("Backend request completed")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrParse, method, req.URL.Path, err)
	}

	return nil
}
