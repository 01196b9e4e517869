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

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/natsutil"
	"github.com/carverauto/edgeview/pkg/reconcile"
	"github.com/carverauto/edgeview/pkg/session"
	"github.com/carverauto/edgeview/pkg/telemetry"
)

var (
	errBackendURLRequired = errors.New("backend_url is required")
	errInvalidBackendURL  = errors.New("backend_url must be an absolute http(s) url")
	errInvalidStreamURL   = errors.New("stream_url must be an absolute ws(s) url")
	errNegativeDuration   = errors.New("durations must not be negative")
	errNegativeCapacity   = errors.New("telemetry_capacity must not be negative")
	errNATSTLSIncomplete  = errors.New("nats.tls requires ca_file, cert_file and key_file")
)

const (
	defaultListenAddr     = ":8090"
	defaultRequestTimeout = 30 * time.Second
)

// ConsoleConfig is the configuration of the console binary.
type ConsoleConfig struct {
	BackendURL        string            `json:"backend_url" yaml:"backend_url"`
	StreamURL         string            `json:"stream_url,omitempty" yaml:"stream_url,omitempty"`
	ListenAddr        string            `json:"listen_addr" yaml:"listen_addr"`
	APIKey            string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	RequestTimeout    models.Duration   `json:"request_timeout" yaml:"request_timeout"`
	SettleDelay       models.Duration   `json:"settle_delay" yaml:"settle_delay"`
	PlaybackInterval  models.Duration   `json:"playback_interval" yaml:"playback_interval"`
	TelemetryCapacity int               `json:"telemetry_capacity" yaml:"telemetry_capacity"`
	CORS              models.CORSConfig `json:"cors" yaml:"cors"`
	NATS              models.NATSConfig `json:"nats" yaml:"nats"`
	Logging           *logger.Config    `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DefaultConsoleConfig returns the values used when neither the file nor the
// environment sets them.
func DefaultConsoleConfig() *ConsoleConfig {
	return &ConsoleConfig{
		ListenAddr:        defaultListenAddr,
		RequestTimeout:    models.Duration(defaultRequestTimeout),
		SettleDelay:       models.Duration(reconcile.DefaultSettleDelay),
		PlaybackInterval:  models.Duration(session.DefaultPlaybackInterval),
		TelemetryCapacity: telemetry.DefaultCapacity,
		NATS: models.NATSConfig{
			Stream:  natsutil.DefaultStream,
			Subject: natsutil.DefaultSubject,
		},
	}
}

// Validate implements Validator. Zero values fall back to defaults.
func (c *ConsoleConfig) Validate() error {
	if c.BackendURL == "" {
		return errBackendURLRequired
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", errInvalidBackendURL, c.BackendURL)
	}

	if c.StreamURL != "" {
		s, err := url.Parse(c.StreamURL)
		if err != nil || (s.Scheme != "ws" && s.Scheme != "wss") {
			return fmt.Errorf("%w: %q", errInvalidStreamURL, c.StreamURL)
		}
	}

	if c.RequestTimeout < 0 || c.SettleDelay < 0 || c.PlaybackInterval < 0 {
		return errNegativeDuration
	}

	if c.TelemetryCapacity < 0 {
		return errNegativeCapacity
	}

	defaults := DefaultConsoleConfig()

	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}

	if c.PlaybackInterval == 0 {
		c.PlaybackInterval = defaults.PlaybackInterval
	}

	if c.TelemetryCapacity == 0 {
		c.TelemetryCapacity = defaults.TelemetryCapacity
	}

	return c.validateNATS(defaults.NATS)
}

func (c *ConsoleConfig) validateNATS(defaults models.NATSConfig) error {
	if !c.NATS.Enabled() {
		return nil
	}

	if c.NATS.Stream == "" {
		c.NATS.Stream = defaults.Stream
	}

	if c.NATS.Subject == "" {
		c.NATS.Subject = defaults.Subject
	}

	if tls := c.NATS.TLS; tls != nil && (tls.CAFile == "" || tls.CertFile == "" || tls.KeyFile == "") {
		return errNATSTLSIncomplete
	}

	return nil
}
