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
	"fmt"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/stage"
)

// ParamsUpdate carries the fields to change; nil fields are left alone.
type ParamsUpdate struct {
	Threshold      *float64 `json:"detection_threshold,omitempty"`
	UploadInterval *float64 `json:"upload_interval,omitempty"`
	SendImage      *bool    `json:"send_image,omitempty"`
	InputWidth     *int     `json:"input_width,omitempty"`
	InputHeight    *int     `json:"input_height,omitempty"`
}

// UpdateParams applies u to the canonical parameters, clamping every value.
// Parameters are editable only in configuration stages.
func (c *Controller) UpdateParams(u ParamsUpdate) (edgeapp.Params, error) {
	if cur := c.machine.Current(); !cur.IsConfiguration() {
		return c.Params(), fmt.Errorf("%w: parameters are locked in %s", ErrBusy, cur)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.params

	if u.Threshold != nil {
		p.Threshold = *u.Threshold
	}

	if u.UploadInterval != nil {
		p.UploadInterval = *u.UploadInterval
	}

	if u.SendImage != nil {
		p.SendImage = *u.SendImage
	}

	if u.InputWidth != nil {
		p.InputWidth = *u.InputWidth
	}

	if u.InputHeight != nil {
		p.InputHeight = *u.InputHeight
	}

	c.params = p.Normalize()

	return c.params, nil
}

func (c *Controller) SetThreshold(t float64) (edgeapp.Params, error) {
	return c.UpdateParams(ParamsUpdate{Threshold: &t})
}

func (c *Controller) SetUploadInterval(seconds float64) (edgeapp.Params, error) {
	return c.UpdateParams(ParamsUpdate{UploadInterval: &seconds})
}

func (c *Controller) SetSendImage(send bool) (edgeapp.Params, error) {
	return c.UpdateParams(ParamsUpdate{SendImage: &send})
}

func (c *Controller) SetInputSize(width, height int) (edgeapp.Params, error) {
	return c.UpdateParams(ParamsUpdate{InputWidth: &width, InputHeight: &height})
}

// BeginRawEdit enters extra_parameter_selection.
func (c *Controller) BeginRawEdit() error {
	if _, err := c.engine.Document(); err != nil {
		return err
	}

	_, err := c.enter(stage.ExtraParameterSelection, stage.ParameterSelection)

	return err
}

// CancelRawEdit leaves extra_parameter_selection without changes.
func (c *Controller) CancelRawEdit() error {
	_, err := c.enter(stage.ParameterSelection, stage.ExtraParameterSelection)
	return err
}

// RawConfig returns the device configuration as it would be pushed with the
// current parameters.
func (c *Controller) RawConfig() (edgeapp.Document, error) {
	return c.engine.Preview(c.Params())
}

// ApplyRawConfig validates a hand-edited configuration, adopts its
// parameters and forces it onto the device at the next start. A rejected
// document leaves the stage in extra_parameter_selection.
func (c *Controller) ApplyRawConfig(raw []byte) (edgeapp.Params, error) {
	if cur := c.machine.Current(); cur != stage.ExtraParameterSelection {
		return c.Params(), fmt.Errorf("%w: raw edit is not open in %s", stage.ErrIllegalTransition, cur)
	}

	c.mu.RLock()
	known, current := c.modelIDs, c.params
	c.mu.RUnlock()

	params, err := c.engine.ApplyRaw(raw, known)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Rejected edited configuration")
		return current, err
	}

	if doc, err := c.engine.Document(); err == nil {
		if id := edgeapp.ResolveModelID(edgeapp.ModelIDOf(doc), known); id != "" {
			params.ModelID = id
		} else {
			params.ModelID = current.ModelID
		}
	}

	c.mu.Lock()
	c.params = params.Normalize()
	params = c.params
	c.mu.Unlock()

	c.settle(stage.ExtraParameterSelection, stage.ParameterSelection)

	c.logger.Info().
		Str("model_id", params.ModelID).
		Msg("Applied edited configuration")

	return params, nil
}
