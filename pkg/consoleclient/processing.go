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
	"net/url"
	"strconv"

	"github.com/carverauto/edgeview/pkg/models"
)

func (c *Client) StartProcessing(ctx context.Context, deviceID string, sendImage bool,
	solution models.SolutionType) (models.StatusResponse, error) {
	q := url.Values{}
	q.Set("receive_image", strconv.FormatBool(sendImage))
	q.Set("solution_type", string(solution))

	var resp models.StatusResponse

	err := c.do(ctx, http.MethodPost, c.endpoint(q, "processing", "start_processing", deviceID), nil, &resp)

	return resp, err
}

func (c *Client) StopProcessing(ctx context.Context, deviceID string) (models.StatusResponse, error) {
	var resp models.StatusResponse

	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "processing", "stop_processing", deviceID), nil, &resp)

	return resp, err
}

// FetchPreviewImage returns a base64 encoded still taken by the device.
func (c *Client) FetchPreviewImage(ctx context.Context, deviceID string) (string, error) {
	var img string

	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "processing", "image", deviceID), nil, &img)

	return img, err
}
