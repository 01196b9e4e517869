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

	"github.com/carverauto/edgeview/pkg/models"
)

//go:generate mockgen -destination=mock_session.go -package=session github.com/carverauto/edgeview/pkg/session Processor,HistorySource,Stream,DeviceDirectory,AppConfigStore,EventPublisher

// Processor starts and stops inference on a device.
type Processor interface {
	StartProcessing(ctx context.Context, deviceID string, sendImage bool, solution models.SolutionType) (models.StatusResponse, error)
	StopProcessing(ctx context.Context, deviceID string) (models.StatusResponse, error)
	// FetchPreviewImage returns a base64 encoded still from the device.
	FetchPreviewImage(ctx context.Context, deviceID string) (string, error)
}

// HistorySource lists and fetches stored inference results.
type HistorySource interface {
	ListDirectories(ctx context.Context, deviceID string) ([]string, error)
	FetchHistory(ctx context.Context, deviceID string, selector models.HistorySelector,
		solution models.SolutionType) (models.HistoryBatch, error)
}

// Stream subscribes to the live inference feed. The returned channel is
// closed when ctx ends or the feed terminates; it cannot be restarted.
type Stream interface {
	Subscribe(ctx context.Context) (<-chan models.InboundMessage, error)
}

// DeviceDirectory looks up devices known to the backend.
type DeviceDirectory interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (models.Device, error)
}

// AppConfigStore reads and updates the per-solution processing settings.
type AppConfigStore interface {
	GetAppConfig(ctx context.Context) (models.AppConfig, error)
	PatchRegions(ctx context.Context, regions []models.Region) error
}

// EventPublisher receives every stage transition.
type EventPublisher interface {
	PublishStageChange(ctx context.Context, event *models.StageEventData) error
}
