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
	"time"

	"github.com/carverauto/edgeview/pkg/models"
)

func (c *Client) ListDirectories(ctx context.Context, deviceID string) ([]string, error) {
	var resp models.ImageDirectories

	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "insight", "directories", deviceID), nil, &resp); err != nil {
		return nil, err
	}

	return resp.Directories, nil
}

// FetchHistory returns stored results. A directory selector returns images
// with their inferences; a time range returns inferences only.
func (c *Client) FetchHistory(ctx context.Context, deviceID string, selector models.HistorySelector,
	solution models.SolutionType) (models.HistoryBatch, error) {
	q := url.Values{}
	q.Set("solution_type", string(solution))

	var endpoint string

	if selector.WithImages() {
		endpoint = c.endpoint(q, "insight", "images_and_inferences", deviceID, selector.Directory)
	} else {
		q.Set("from_datetime", selector.From.UTC().Format(time.RFC3339))
		q.Set("to_datetime", selector.To.UTC().Format(time.RFC3339))
		endpoint = c.endpoint(q, "insight", "inferences", deviceID)
	}

	var batch models.HistoryBatch

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &batch); err != nil {
		return models.HistoryBatch{}, err
	}

	return batch, nil
}
