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

// Package session orchestrates the operator console: device and model
// selection, configuration reconciliation, live inference sessions and
// historical playback, all guarded by the session stage machine.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/reconcile"
	"github.com/carverauto/edgeview/pkg/stage"
	"github.com/carverauto/edgeview/pkg/telemetry"
)

const (
	// DefaultPlaybackInterval is the auto-advance period of history playback.
	DefaultPlaybackInterval = time.Second

	eventBufferSize = 64
)

var (
	// ErrBusy is returned while an external call holds the stage in a transitional value.
	ErrBusy = errors.New("session is busy")
	// ErrNoDevice is returned when an operation needs a device and none is given.
	ErrNoDevice = errors.New("device ID is not available")
	// ErrDeviceMismatch is returned when a session call names a device other than the selected one.
	ErrDeviceMismatch = errors.New("device is not the selected device")
	// ErrWrongMode is returned for operations that belong to the other console mode.
	ErrWrongMode = errors.New("operation not available in this mode")
	// ErrUnknownModel is returned when selecting a model the device does not have.
	ErrUnknownModel = errors.New("model is not deployed on the device")
	// ErrInvalidSelector is returned when a playback source is incomplete.
	ErrInvalidSelector = errors.New("invalid playback source")
	// ErrRegionsUnsupported is returned for zone editing outside the region counting solution.
	ErrRegionsUnsupported = errors.New("zones require the PeopleCountInRegions solution")
	// ErrInvalidRegion is returned for a zone without id or with no area.
	ErrInvalidRegion = errors.New("invalid region")
)

// Dependencies are the external collaborators of a Controller. Publisher may be nil.
type Dependencies struct {
	Configs   reconcile.ConfigStore
	Processor Processor
	History   HistorySource
	Stream    Stream
	Devices   DeviceDirectory
	AppConfig AppConfigStore
	Publisher EventPublisher
}

// Option configures a Controller.
type Option func(*Controller)

// WithPlaybackInterval overrides DefaultPlaybackInterval.
func WithPlaybackInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.playbackInterval = d
		}
	}
}

// WithTelemetryCapacity overrides telemetry.DefaultCapacity.
func WithTelemetryCapacity(n int) Option {
	return func(c *Controller) {
		c.telemetryCapacity = n
	}
}

// WithReconcileOptions configures the reconciliation engine.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *Controller) {
		c.reconcileOpts = append(c.reconcileOpts, opts...)
	}
}

// WithInitialSolution selects the solution used before the user picks one.
func WithInitialSolution(s models.SolutionType) Option {
	return func(c *Controller) {
		if s.Valid() {
			c.solution = s
		}
	}
}

// Controller is the console session controller. All methods are safe for
// concurrent use; overlapping start, stop and load requests are rejected
// with ErrBusy while the stage is transitional.
type Controller struct {
	deps   Dependencies
	logger logger.Logger

	playbackInterval  time.Duration
	telemetryCapacity int
	reconcileOpts     []reconcile.Option

	machine *stage.Machine
	engine  *reconcile.Engine
	gate    *telemetry.Gate
	index   *playback.Index

	events     chan models.StageEventData
	streamWake chan struct{}

	mu             sync.RWMutex
	mode           models.Mode
	deviceID       string
	modelIDs       []string
	directories    []string
	solution       models.SolutionType
	params         edgeapp.Params
	previewImage   string
	appConfig      models.AppConfig
	selectedRegion string
	streamCancel   context.CancelFunc
	listeners      []func(models.StageEventData)
}

func New(deps Dependencies, log logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		deps:              deps,
		logger:            log,
		playbackInterval:  DefaultPlaybackInterval,
		telemetryCapacity: telemetry.DefaultCapacity,
		mode:              models.ModeRealtime,
		solution:          models.PeopleCount,
		params:            edgeapp.DefaultParams(),
		appConfig:         models.DefaultAppConfig(),
		events:            make(chan models.StageEventData, eventBufferSize),
		streamWake:        make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.machine = stage.NewMachine(log)
	c.engine = reconcile.NewEngine(deps.Configs, log, c.reconcileOpts...)
	c.gate = telemetry.NewGate(c.telemetryCapacity)
	c.index = playback.NewIndex()

	c.machine.Subscribe(c.onStageChange)

	return c
}

// OnStageChange registers fn for every stage transition.
func (c *Controller) OnStageChange(fn func(models.StageEventData)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, fn)
}

func (c *Controller) onStageChange(from, to stage.Stage) {
	c.mu.RLock()
	event := models.StageEventData{
		DeviceID:      c.deviceID,
		Mode:          c.mode,
		SolutionType:  c.solution,
		PreviousStage: from.String(),
		CurrentStage:  to.String(),
		Timestamp:     time.Now().UTC(),
	}
	listeners := c.listeners
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}

	if c.deps.Publisher == nil {
		return
	}

	select {
	case c.events <- event:
	default:
		c.logger.Warn().
			Str("stage", event.CurrentStage).
			Msg("Stage event buffer full, dropping event")
	}
}

// Stage returns the current session stage.
func (c *Controller) Stage() stage.Stage {
	return c.machine.Current()
}

// enter moves the machine to next if the current stage is one of allowed.
func (c *Controller) enter(next stage.Stage, allowed ...stage.Stage) (stage.Stage, error) {
	cur := c.machine.Current()

	if cur.IsTransitional() {
		return cur, fmt.Errorf("%w: stage is %s", ErrBusy, cur)
	}

	if !lo.Contains(allowed, cur) {
		return cur, fmt.Errorf("%w: %s -> %s", stage.ErrIllegalTransition, cur, next)
	}

	if err := c.machine.TransitionFrom(cur, next); err != nil {
		if errors.Is(err, stage.ErrStaleStage) {
			return cur, fmt.Errorf("%w: %w", ErrBusy, err)
		}

		return cur, err
	}

	return cur, nil
}

// settle completes a transition started by enter. The machine cannot leave a
// transitional stage through any other path, so a failure here is a bug.
func (c *Controller) settle(from, to stage.Stage) {
	if err := c.machine.TransitionFrom(from, to); err != nil {
		c.logger.Error().
			Err(err).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Unexpected stage transition failure")
	}
}

func (c *Controller) requireMode(m models.Mode) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.mode != m {
		return fmt.Errorf("%w: %s", ErrWrongMode, c.mode)
	}

	return nil
}

// Mode returns the active console mode.
func (c *Controller) Mode() models.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.mode
}

// DeviceID returns the selected device.
func (c *Controller) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.deviceID
}

// Params returns the canonical parameters.
func (c *Controller) Params() edgeapp.Params {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.params
}

// Devices lists the devices known to the backend.
func (c *Controller) Devices(ctx context.Context) ([]models.Device, error) {
	return c.deps.Devices.ListDevices(ctx)
}

// SwitchMode stops a live session, clears every mode-specific state and
// returns the stage to initial.
func (c *Controller) SwitchMode(ctx context.Context, mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrWrongMode, mode)
	}

	if c.Mode() == mode {
		return nil
	}

	cur := c.machine.Current()
	if cur.IsTransitional() {
		return fmt.Errorf("%w: stage is %s", ErrBusy, cur)
	}

	if c.Mode() == models.ModeRealtime && cur == stage.InferenceRunning {
		if err := c.StopSession(ctx, c.DeviceID()); err != nil {
			return fmt.Errorf("stop session before switching mode: %w", err)
		}
	}

	c.resetRealtime()
	c.index.Stop()
	c.engine.Reset()

	c.mu.Lock()
	c.mode = mode
	c.deviceID = ""
	c.modelIDs = nil
	c.directories = nil
	c.params = edgeapp.DefaultParams()
	c.previewImage = ""
	c.selectedRegion = ""
	c.mu.Unlock()

	c.gate.SetDevice("")
	c.machine.Reset()

	c.logger.Info().Str("mode", string(mode)).Msg("Switched console mode")

	return nil
}

// resetRealtime deactivates the stream and clears live telemetry.
func (c *Controller) resetRealtime() {
	c.gate.Reset()
	c.cancelStream()
}

// SelectDevice makes deviceID the active device. In realtime mode this is
// only possible before a model is loaded; in history mode it is possible
// outside playback and lists the device's image directories.
func (c *Controller) SelectDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		c.logger.Error().Msg("Device ID is not available")
		return ErrNoDevice
	}

	if deviceID == c.DeviceID() {
		return nil
	}

	if c.Mode() == models.ModeHistory {
		return c.selectHistoryDevice(ctx, deviceID)
	}

	if cur := c.machine.Current(); cur != stage.Initial {
		if cur.IsTransitional() {
			return fmt.Errorf("%w: stage is %s", ErrBusy, cur)
		}

		return fmt.Errorf("%w: device cannot change in %s", stage.ErrIllegalTransition, cur)
	}

	device, err := c.deps.Devices.GetDevice(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("get device %s: %w", deviceID, err)
	}

	c.engine.Reset()
	c.gate.SetDevice(deviceID)

	c.mu.Lock()
	c.deviceID = deviceID
	c.modelIDs = device.Models
	c.params.ModelID = edgeapp.DefaultModelID
	c.previewImage = ""
	c.mu.Unlock()

	c.logger.Info().
		Str("device_id", deviceID).
		Strs("models", device.Models).
		Msg("Selected device")

	return nil
}

func (c *Controller) selectHistoryDevice(ctx context.Context, deviceID string) error {
	cur := c.machine.Current()
	if cur.IsInference() {
		return fmt.Errorf("%w: device cannot change during playback", ErrBusy)
	}

	dirs, err := c.deps.History.ListDirectories(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("list directories of %s: %w", deviceID, err)
	}

	c.index.Stop()

	c.mu.Lock()
	c.deviceID = deviceID
	c.directories = dirs
	c.mu.Unlock()

	if cur == stage.Initial {
		c.settle(stage.Initial, stage.ParameterSelection)
	}

	c.logger.Info().
		Str("device_id", deviceID).
		Int("directories", len(dirs)).
		Msg("Selected device for playback")

	return nil
}

// SelectModel loads the device configuration for modelID:
// initial -> parameter_loading -> parameter_selection. A failed load returns
// the stage to initial.
func (c *Controller) SelectModel(ctx context.Context, modelID string) error {
	if err := c.requireMode(models.ModeRealtime); err != nil {
		return err
	}

	c.mu.RLock()
	deviceID, known := c.deviceID, c.modelIDs
	c.mu.RUnlock()

	if deviceID == "" {
		return ErrNoDevice
	}

	if !lo.Contains(known, modelID) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, modelID)
	}

	if _, err := c.enter(stage.ParameterLoading, stage.Initial, stage.ParameterSelection); err != nil {
		return err
	}

	params, err := c.engine.Load(ctx, deviceID, modelID)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("device_id", deviceID).
			Str("model_id", modelID).
			Msg("Failed to load device configuration")

		c.settle(stage.ParameterLoading, stage.Initial)

		return err
	}

	params.ModelID = modelID
	appConfig := c.loadAppConfig(ctx)
	preview := c.fetchPreview(ctx, deviceID)

	c.mu.Lock()
	c.params = params.Normalize()
	c.appConfig = appConfig
	c.previewImage = preview
	c.mu.Unlock()

	c.settle(stage.ParameterLoading, stage.ParameterSelection)

	return nil
}

// loadAppConfig falls back to defaults when the backend cannot supply settings.
func (c *Controller) loadAppConfig(ctx context.Context) models.AppConfig {
	cfg, err := c.deps.AppConfig.GetAppConfig(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Using default app config")
		return models.DefaultAppConfig()
	}

	return cfg.WithDefaults()
}

func (c *Controller) fetchPreview(ctx context.Context, deviceID string) string {
	img, err := c.deps.Processor.FetchPreviewImage(ctx, deviceID)
	if err != nil {
		c.logger.Warn().Err(err).Str("device_id", deviceID).Msg("Failed to fetch preview image")
		return ""
	}

	return img
}

// ChangeSolution switches the solution type. A live session is stopped
// first and live telemetry is cleared; in history mode the loaded batch is
// discarded.
func (c *Controller) ChangeSolution(ctx context.Context, solution models.SolutionType) error {
	if !solution.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownSolutionType, solution)
	}

	c.mu.RLock()
	current, mode, deviceID := c.solution, c.mode, c.deviceID
	c.mu.RUnlock()

	if current == solution {
		return nil
	}

	cur := c.machine.Current()
	if !cur.IsConfiguration() && cur != stage.InferenceRunning {
		return fmt.Errorf("%w: solution cannot change in %s", ErrBusy, cur)
	}

	if mode == models.ModeHistory {
		if cur == stage.InferenceRunning {
			if err := c.StopPlayback(); err != nil {
				return err
			}
		}

		c.index.Stop()
		c.setSolution(solution)

		return nil
	}

	if cur == stage.InferenceRunning {
		if err := c.StopSession(ctx, deviceID); err != nil {
			return fmt.Errorf("stop session before changing solution: %w", err)
		}
	}

	c.resetRealtime()

	if _, err := c.enter(stage.ParameterLoading, stage.ParameterSelection, stage.ZoneSelection,
		stage.ExtraParameterSelection); err != nil {
		return err
	}

	img, err := c.deps.Processor.FetchPreviewImage(ctx, deviceID)
	if err != nil {
		c.settle(stage.ParameterLoading, stage.ParameterSelection)
		return fmt.Errorf("fetch preview image: %w", err)
	}

	c.mu.Lock()
	c.previewImage = img
	c.selectedRegion = ""
	c.mu.Unlock()

	c.setSolution(solution)
	c.settle(stage.ParameterLoading, stage.ParameterSelection)

	return nil
}

func (c *Controller) setSolution(solution models.SolutionType) {
	c.mu.Lock()
	c.solution = solution
	c.mu.Unlock()

	c.logger.Info().Str("solution_type", string(solution)).Msg("Changed solution type")
}
