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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carverauto/edgeview/pkg/edgeapp"
)

// FetchConfiguration returns the remote configuration of deviceID. A device
// without one yields ErrNotFound.
func (c *Client) FetchConfiguration(ctx context.Context, deviceID string) (edgeapp.Document, error) {
	var raw json.RawMessage

	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "configurations", deviceID), nil, &raw); err != nil {
		return nil, err
	}

	doc, err := edgeapp.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: configuration of %s: %w", ErrParse, deviceID, err)
	}

	return doc, nil
}

// PatchConfiguration updates the remote configuration of deviceID.
func (c *Client) PatchConfiguration(ctx context.Context, deviceID string, doc edgeapp.Document) error {
	return c.do(ctx, http.MethodPatch, c.endpoint(nil, "configurations", deviceID), doc, nil)
}

// PutConfiguration creates the remote configuration of deviceID and binds it.
func (c *Client) PutConfiguration(ctx context.Context, deviceID string, doc edgeapp.Document) error {
	return c.do(ctx, http.MethodPut, c.endpoint(nil, "configurations", deviceID), doc, nil)
}
