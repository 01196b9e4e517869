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

// Package reconcile keeps a device's remote configuration in step with the
// console's canonical parameters.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
)

// DefaultSettleDelay gives the device time to absorb a pushed configuration
// before the next processing call.
const DefaultSettleDelay = 5 * time.Second

// ErrNoConfiguration is returned when no device configuration has been loaded.
var ErrNoConfiguration = errors.New("no device configuration loaded")

// Result describes the outcome of a reconciliation.
type Result struct {
	Pushed bool
	Schema edgeapp.Schema
}

// Sleeper waits for d or until ctx ends.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures an Engine.
type Option func(*Engine)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.settleDelay = d
	}
}

// WithSleeper replaces the wait used after a push.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) {
		e.sleep = s
	}
}

// Engine holds the last known configuration of the selected device and the
// force-update flag set by raw edits.
type Engine struct {
	store       ConfigStore
	logger      logger.Logger
	settleDelay time.Duration
	sleep       Sleeper

	mu         sync.RWMutex
	deviceID   string
	held       edgeapp.Document
	force      bool
	generation uint64
}

func NewEngine(store ConfigStore, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		logger:      log,
		settleDelay: DefaultSettleDelay,
		sleep:       sleepContext,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Load fetches the configuration of deviceID and makes it the baseline.
//
// A device without a configuration gets a synthesized legacy default, which
// is created on the backend. Structured documents get their missing custom
// settings filled in for modelID and are pushed when anything was missing.
func (e *Engine) Load(ctx context.Context, deviceID, modelID string) (edgeapp.Params, error) {
	doc, err := e.store.FetchConfiguration(ctx, deviceID)

	switch {
	case errors.Is(err, models.ErrNotFound):
		def := edgeapp.DefaultV1(edgeapp.NewFileName())

		e.logger.Info().
			Str("device_id", deviceID).
			Str("file_name", def.FileName()).
			Msg("Device has no configuration, creating default")

		if err := e.store.PutConfiguration(ctx, deviceID, def); err != nil {
			return edgeapp.Params{}, fmt.Errorf("create default configuration: %w", err)
		}

		doc = def
	case err != nil:
		return edgeapp.Params{}, fmt.Errorf("fetch configuration: %w", err)
	}

	if v2, ok := doc.(*edgeapp.ConfigurationV2); ok {
		filled, incomplete := edgeapp.FillDefaults(v2, modelID)
		doc = filled

		if incomplete {
			e.logger.Info().
				Str("device_id", deviceID).
				Msg("Filling missing custom settings on device configuration")

			e.push(ctx, deviceID, doc)
		}
	}

	e.mu.Lock()
	e.deviceID = deviceID
	e.held = doc
	e.force = false
	e.generation++
	e.mu.Unlock()

	e.logger.Debug().
		Str("device_id", deviceID).
		Str("schema", string(doc.Schema())).
		Msg("Loaded device configuration")

	return edgeapp.Parse(doc), nil
}

// Reconcile writes p into the held configuration and pushes it when required:
// always for structured documents, and for legacy documents only when they
// differ from p or a raw edit forced it. A deviceID other than the loaded
// device makes the call a no-op. Push failures are logged, not returned; the
// held configuration is then left as it was and a pending forced push stays
// pending, so the next Reconcile retries it.
func (e *Engine) Reconcile(ctx context.Context, deviceID string, p edgeapp.Params) Result {
	e.mu.RLock()
	held, loaded, force, gen := e.held, e.deviceID, e.force, e.generation
	e.mu.RUnlock()

	if held == nil || loaded != deviceID {
		e.logger.Warn().
			Str("device_id", deviceID).
			Str("loaded_device_id", loaded).
			Msg("Skipping reconciliation for a device that is not loaded")

		return Result{}
	}

	result := Result{Schema: held.Schema()}

	if held.Schema() == edgeapp.SchemaV1 && !force && !edgeapp.Diff(held, p) {
		return result
	}

	updated := edgeapp.Apply(held, p)

	if !e.push(ctx, deviceID, updated) {
		return result
	}

	e.mu.Lock()
	if e.generation == gen {
		e.held = updated
		e.force = false
		e.generation++
	}
	e.mu.Unlock()

	result.Pushed = true

	return result
}

// push sends doc and waits for the device to settle. It reports success.
func (e *Engine) push(ctx context.Context, deviceID string, doc edgeapp.Document) bool {
	if err := e.store.PatchConfiguration(ctx, deviceID, doc); err != nil {
		e.logger.Error().
			Err(err).
			Str("device_id", deviceID).
			Str("schema", string(doc.Schema())).
			Msg("Failed to push configuration")

		return false
	}

	e.logger.Info().
		Str("device_id", deviceID).
		Dur("settle_delay", e.settleDelay).
		Msg("Pushed configuration, waiting for device to apply it")

	if err := e.sleep(ctx, e.settleDelay); err != nil {
		e.logger.Warn().Err(err).Str("device_id", deviceID).Msg("Settle wait interrupted")
	}

	return true
}

// ApplyRaw replaces the held configuration with a hand-edited document and
// forces the next reconciliation to push it.
func (e *Engine) ApplyRaw(raw []byte, knownModelIDs []string) (edgeapp.Params, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.held == nil {
		return edgeapp.Params{}, ErrNoConfiguration
	}

	doc, err := edgeapp.ApplyRaw(e.held, raw, knownModelIDs)
	if err != nil {
		return edgeapp.Params{}, err
	}

	e.held = doc
	e.force = true
	e.generation++

	return edgeapp.Parse(doc), nil
}

// Document returns the held configuration.
func (e *Engine) Document() (edgeapp.Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.held == nil {
		return nil, ErrNoConfiguration
	}

	return e.held, nil
}

// Preview returns the held configuration with p applied, without storing it.
func (e *Engine) Preview(p edgeapp.Params) (edgeapp.Document, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}

	return edgeapp.Apply(doc, p), nil
}

func (e *Engine) DeviceID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.deviceID
}

// Forced reports whether the next reconciliation will push unconditionally.
func (e *Engine) Forced() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.force
}

// Reset forgets the held configuration.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.deviceID = ""
	e.held = nil
	e.force = false
	e.generation++
}
