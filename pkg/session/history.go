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

package session

import (
	"context"
	"fmt"

	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/stage"
)

// Directories returns the image directories of the history device.
func (c *Controller) Directories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.directories...)
}

// RefreshDirectories lists the image directories of the selected device again.
func (c *Controller) RefreshDirectories(ctx context.Context) ([]string, error) {
	if err := c.requireMode(models.ModeHistory); err != nil {
		return nil, err
	}

	deviceID := c.DeviceID()
	if deviceID == "" {
		return nil, ErrNoDevice
	}

	dirs, err := c.deps.History.ListDirectories(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list directories of %s: %w", deviceID, err)
	}

	c.mu.Lock()
	c.directories = dirs
	c.mu.Unlock()

	return append([]string(nil), dirs...), nil
}

func validSelector(s models.HistorySelector) bool {
	if s.Directory != "" {
		return true
	}

	return !s.From.IsZero() && !s.To.IsZero() && s.From.Before(s.To)
}

// StartPlayback fetches the history batch described by selector and
// positions the cursor on its first record. A failed fetch returns the stage
// to parameter_selection.
func (c *Controller) StartPlayback(ctx context.Context, selector models.HistorySelector) (playback.Status, error) {
	if err := c.requireMode(models.ModeHistory); err != nil {
		return playback.Status{}, err
	}

	c.mu.RLock()
	deviceID, solution := c.deviceID, c.solution
	c.mu.RUnlock()

	if deviceID == "" {
		return playback.Status{}, ErrNoDevice
	}

	if !validSelector(selector) {
		return playback.Status{}, ErrInvalidSelector
	}

	if _, err := c.enter(stage.InferenceStarting, stage.ParameterSelection); err != nil {
		return playback.Status{}, err
	}

	batch, err := c.deps.History.FetchHistory(ctx, deviceID, selector, solution)
	if err != nil {
		c.settle(stage.InferenceStarting, stage.ParameterSelection)

		c.logger.Error().
			Err(err).
			Str("device_id", deviceID).
			Str("directory", selector.Directory).
			Msg("Failed to fetch history")

		return playback.Status{}, fmt.Errorf("fetch history: %w", err)
	}

	c.index.Start(batch)
	c.settle(stage.InferenceStarting, stage.InferenceRunning)

	c.logger.Info().
		Str("device_id", deviceID).
		Int("records", len(batch.Data)).
		Msg("Started playback")

	return c.index.Status(), nil
}

// StopPlayback discards the loaded batch.
func (c *Controller) StopPlayback() error {
	if err := c.requireMode(models.ModeHistory); err != nil {
		return err
	}

	if _, err := c.enter(stage.InferenceStopping, stage.InferenceRunning); err != nil {
		return err
	}

	c.index.Stop()
	c.settle(stage.InferenceStopping, stage.ParameterSelection)

	return nil
}

func (c *Controller) navigate(move func() bool) (playback.Status, error) {
	if err := c.requireMode(models.ModeHistory); err != nil {
		return playback.Status{}, err
	}

	move()

	return c.index.Status(), nil
}

func (c *Controller) Next() (playback.Status, error) {
	return c.navigate(c.index.Next)
}

func (c *Controller) Previous() (playback.Status, error) {
	return c.navigate(c.index.Previous)
}

func (c *Controller) Seek(i int) (playback.Status, error) {
	return c.navigate(func() bool { return c.index.Seek(i) })
}

// TogglePlayback starts or pauses auto-advance.
func (c *Controller) TogglePlayback() (playback.Status, error) {
	return c.navigate(c.index.TogglePlayback)
}

// Tick advances auto-run playback by one record.
func (c *Controller) Tick() bool {
	if c.Mode() != models.ModeHistory || c.machine.Current() != stage.InferenceRunning {
		return false
	}

	return c.index.Tick()
}
