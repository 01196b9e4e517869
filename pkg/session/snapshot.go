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
	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/telemetry"
)

// Snapshot is a consistent read-only view of the console for rendering.
type Snapshot struct {
	Mode           models.Mode                   `json:"mode"`
	Stage          string                        `json:"stage"`
	DeviceID       string                        `json:"device_id,omitempty"`
	ModelIDs       []string                      `json:"model_ids,omitempty"`
	Directories    []string                      `json:"directories,omitempty"`
	SolutionType   models.SolutionType           `json:"solution_type"`
	Params         edgeapp.Params                `json:"params"`
	Forced         bool                          `json:"force_push"`
	Schema         edgeapp.Schema                `json:"schema,omitempty"`
	PreviewImage   string                        `json:"preview_image,omitempty"`
	StreamActive   bool                          `json:"stream_active"`
	Frame          telemetry.Frame               `json:"frame"`
	PeopleCount    []models.PeopleCountTelemetry `json:"people_count"`
	RegionCount    []models.RegionCountTelemetry `json:"region_count"`
	Playback       playback.Status               `json:"playback"`
	Record         *models.HistoryRecord         `json:"record,omitempty"`
	AppConfig      models.AppConfig              `json:"app_config"`
	SelectedRegion string                        `json:"selected_region,omitempty"`
}

// Snapshot captures the controller state. In history mode the telemetry
// series are derived from the loaded batch instead of the live buffers.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	s := Snapshot{
		Mode:           c.mode,
		DeviceID:       c.deviceID,
		ModelIDs:       append([]string(nil), c.modelIDs...),
		Directories:    append([]string(nil), c.directories...),
		SolutionType:   c.solution,
		Params:         c.params,
		PreviewImage:   c.previewImage,
		AppConfig:      c.appConfig,
		SelectedRegion: c.selectedRegion,
	}
	c.mu.RUnlock()

	s.Stage = c.machine.Current().String()
	s.Forced = c.engine.Forced()

	if doc, err := c.engine.Document(); err == nil {
		s.Schema = doc.Schema()
	}

	if s.Mode == models.ModeHistory {
		batch := c.index.Batch()
		s.PeopleCount = batch.PeopleCountSeries()
		s.RegionCount = batch.RegionCountSeries()
		s.Playback = c.index.Status()

		if rec, ok := c.index.Current(); ok {
			s.Record = &rec
		}

		return s
	}

	s.StreamActive = c.gate.Active()
	s.Frame = c.gate.Current()
	s.PeopleCount = c.gate.PeopleCount()
	s.RegionCount = c.gate.RegionCount()
	s.Playback = c.index.Status()

	return s
}
