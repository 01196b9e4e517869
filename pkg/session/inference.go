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
	"github.com/carverauto/edgeview/pkg/stage"
)

// StartSession reconciles the device configuration and starts live
// inference on deviceID, which must be the selected device. A failed start
// returns the stage to parameter_selection and leaves the stream inactive.
func (c *Controller) StartSession(ctx context.Context, deviceID string) error {
	if err := c.requireMode(models.ModeRealtime); err != nil {
		return err
	}

	if err := c.requireSelected(deviceID); err != nil {
		return err
	}

	if _, err := c.enter(stage.InferenceStarting, stage.ParameterSelection); err != nil {
		return err
	}

	c.mu.RLock()
	params, solution := c.params, c.solution
	c.mu.RUnlock()

	result := c.engine.Reconcile(ctx, deviceID, params)

	resp, err := c.deps.Processor.StartProcessing(ctx, deviceID, params.SendImage, solution)
	if err != nil {
		c.resetRealtime()
		c.settle(stage.InferenceStarting, stage.ParameterSelection)

		c.logger.Error().
			Err(err).
			Str("device_id", deviceID).
			Str("solution_type", string(solution)).
			Msg("Failed to start processing")

		return fmt.Errorf("start processing: %w", err)
	}

	c.gate.SetDevice(deviceID)
	c.gate.Activate()
	c.wakeStream()
	c.settle(stage.InferenceStarting, stage.InferenceRunning)

	c.logger.Info().
		Str("device_id", deviceID).
		Str("solution_type", string(solution)).
		Bool("config_pushed", result.Pushed).
		Str("status", resp.Status).
		Msg("Started processing")

	return nil
}

// StopSession stops live inference on deviceID, which must be the selected
// device. A failed stop returns the stage to inference_running; the session
// is assumed to still be live.
func (c *Controller) StopSession(ctx context.Context, deviceID string) error {
	if err := c.requireMode(models.ModeRealtime); err != nil {
		return err
	}

	if err := c.requireSelected(deviceID); err != nil {
		return err
	}

	if _, err := c.enter(stage.InferenceStopping, stage.InferenceRunning); err != nil {
		return err
	}

	resp, err := c.deps.Processor.StopProcessing(ctx, deviceID)
	if err != nil {
		c.settle(stage.InferenceStopping, stage.InferenceRunning)

		c.logger.Error().
			Err(err).
			Str("device_id", deviceID).
			Msg("Failed to stop processing")

		return fmt.Errorf("stop processing: %w", err)
	}

	c.resetRealtime()
	c.settle(stage.InferenceStopping, stage.ParameterSelection)

	c.logger.Info().
		Str("device_id", deviceID).
		Str("status", resp.Status).
		Msg("Stopped processing")

	return nil
}

// requireSelected rejects an empty deviceID or one that differs from the
// selected device. Nothing is changed on rejection.
func (c *Controller) requireSelected(deviceID string) error {
	if deviceID == "" {
		c.logger.Error().Msg("Device ID is not available")
		return ErrNoDevice
	}

	if selected := c.DeviceID(); deviceID != selected {
		c.logger.Warn().
			Str("device_id", deviceID).
			Str("selected_device_id", selected).
			Msg("Ignoring session call for a device that is not selected")

		return fmt.Errorf("%w: %s", ErrDeviceMismatch, deviceID)
	}

	return nil
}

// HandleMessage offers one inbound stream message to the device gate.
func (c *Controller) HandleMessage(ctx context.Context, msg *models.InboundMessage) bool {
	if c.Mode() != models.ModeRealtime {
		return false
	}

	return c.gate.Offer(ctx, msg)
}

func (c *Controller) wakeStream() {
	select {
	case c.streamWake <- struct{}{}:
	default:
	}
}

func (c *Controller) cancelStream() {
	c.mu.Lock()
	cancel := c.streamCancel
	c.streamCancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
