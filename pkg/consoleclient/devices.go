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

package consoleclient

import (
	"context"
	"net/http"

	"github.com/carverauto/edgeview/pkg/models"
)

func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	var resp models.DeviceList

	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "devices"), nil, &resp); err != nil {
		return nil, err
	}

	return resp.Devices, nil
}

func (c *Client) GetDevice(ctx context.Context, deviceID string) (models.Device, error) {
	var device models.Device

	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "devices", deviceID), nil, &device)

	return device, err
}

// GetAppConfig returns the backend processing settings with defaults filled in.
func (c *Client) GetAppConfig(ctx context.Context) (models.AppConfig, error) {
	var cfg models.AppConfig

	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "app_config/"), nil, &cfg); err != nil {
		return models.AppConfig{}, err
	}

	return cfg.WithDefaults(), nil
}

type regionsRequest struct {
	Regions []models.Region `json:"regions"`
}

func (c *Client) PatchRegions(ctx context.Context, regions []models.Region) error {
	return c.do(ctx, http.MethodPatch, c.endpoint(nil, "app_config", "regions"), regionsRequest{Regions: regions}, nil)
}
