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

package telemetry

import (
	"context"
	"sync"

	"github.com/carverauto/edgeview/pkg/models"
)

// Frame is the most recently accepted stream message.
type Frame struct {
	Image     string            `json:"image,omitempty"`
	Inference *models.Inference `json:"inference,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
}

// Gate admits inbound stream messages only for the selected device while the
// live stream is active, and records people count telemetry from them.
type Gate struct {
	mu          sync.RWMutex
	deviceID    string
	active      bool
	frame       Frame
	peopleCount *Bounded[models.PeopleCountTelemetry]
	regionCount *Bounded[models.RegionCountTelemetry]
}

// NewGate returns an inactive gate with no device selected.
func NewGate(capacity int) *Gate {
	return &Gate{
		peopleCount: NewBounded[models.PeopleCountTelemetry](capacity),
		regionCount: NewBounded[models.RegionCountTelemetry](capacity),
	}
}

// SetDevice selects the device whose messages are admitted. Selecting a
// different device resets the gate.
func (g *Gate) SetDevice(deviceID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deviceID == deviceID {
		return
	}

	g.resetLocked()
	g.deviceID = deviceID
}

// DeviceID returns the selected device.
func (g *Gate) DeviceID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.deviceID
}

// Activate starts admitting messages for the selected device.
func (g *Gate) Activate() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.active = true
}

// Active reports whether messages are being admitted.
func (g *Gate) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.active
}

// Reset deactivates the stream and clears all buffered state in one step, so
// no message can be retained between deactivation and clearing.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.resetLocked()
}

func (g *Gate) resetLocked() {
	g.active = false
	g.frame = Frame{}
	g.peopleCount.Clear()
	g.regionCount.Clear()
}

// Offer applies msg if it belongs to the selected device and the stream is
// active. Rejected messages leave the gate untouched.
func (g *Gate) Offer(ctx context.Context, msg *models.InboundMessage) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if msg.DeviceID != g.deviceID || g.deviceID == "" {
		recordMessage(ctx, outcomeForeignDevice)
		return false
	}

	if !g.active {
		recordMessage(ctx, outcomeInactive)
		return false
	}

	inference := msg.Inference
	g.frame = Frame{
		Image:     msg.Image,
		Inference: &inference,
		Timestamp: msg.Timestamp,
	}

	switch inference.Kind {
	case models.PeopleCountKind:
		if g.peopleCount.Push(models.PeopleCountTelemetry{
			Timestamp:   msg.Timestamp,
			PeopleCount: inference.PeopleCount,
		}) {
			recordEviction(ctx, models.PeopleCountKind.String())
		}
	case models.PeopleCountInRegionsKind:
		if g.regionCount.Push(models.RegionCountTelemetry{
			Timestamp:            msg.Timestamp,
			PeopleCountInRegions: inference.PeopleCountInRegions,
		}) {
			recordEviction(ctx, models.PeopleCountInRegionsKind.String())
		}
	case models.ObjectDetectionOnly, models.HeatmapKind:
	}

	recordMessage(ctx, outcomeAccepted)

	return true
}

// Current returns the most recently accepted frame.
func (g *Gate) Current() Frame {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.frame
}

// PeopleCount returns the buffered people count samples, oldest first.
func (g *Gate) PeopleCount() []models.PeopleCountTelemetry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.peopleCount.Snapshot()
}

// RegionCount returns the buffered per-region samples, oldest first.
func (g *Gate) RegionCount() []models.RegionCountTelemetry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.regionCount.Snapshot()
}
