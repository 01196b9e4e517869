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

package consoleapi

import (
	"context"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/session"
)

// Console is the session controller surface exposed over HTTP.
type Console interface {
	Snapshot() session.Snapshot
	DeviceID() string
	Devices(ctx context.Context) ([]models.Device, error)

	SwitchMode(ctx context.Context, mode models.Mode) error
	SelectDevice(ctx context.Context, deviceID string) error
	SelectModel(ctx context.Context, modelID string) error
	ChangeSolution(ctx context.Context, solution models.SolutionType) error
	UpdateParams(u session.ParamsUpdate) (edgeapp.Params, error)

	StartSession(ctx context.Context, deviceID string) error
	StopSession(ctx context.Context, deviceID string) error

	BeginZone(regionID string) error
	AcceptZone(ctx context.Context, region models.Region) error
	CancelZone() error

	RawConfig() (edgeapp.Document, error)
	BeginRawEdit() error
	CancelRawEdit() error
	ApplyRawConfig(raw []byte) (edgeapp.Params, error)

	RefreshDirectories(ctx context.Context) ([]string, error)
	StartPlayback(ctx context.Context, selector models.HistorySelector) (playback.Status, error)
	StopPlayback() error
	Next() (playback.Status, error)
	Previous() (playback.Status, error)
	Seek(i int) (playback.Status, error)
	TogglePlayback() (playback.Status, error)
}

var _ Console = (*session.Controller)(nil)
