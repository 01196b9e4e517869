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

	"github.com/gorilla/websocket"

	"github.com/carverauto/edgeview/pkg/models"
)

const streamBufferSize = 100

// Subscribe dials the live inference websocket. The channel is closed when
// ctx ends or the backend closes the socket; a new subscription is needed
// after that.
func (c *Client) Subscribe(ctx context.Context) (<-chan models.InboundMessage, error) {
	headers := http.Header{}
	if c.apiKey != "" {
		headers.Set("X-API-Key", c.apiKey)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.streamURL, headers)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		if resp != nil {
			return nil, &StatusError{Method: http.MethodGet, Path: streamPath, Code: resp.StatusCode, Body: err.Error()}
		}

		return nil, fmt.Errorf("%w: dial %s: %w", ErrTransport, c.streamURL, err)
	}

	c.logger.Info().Str("url", c.streamURL).Msg("Connected to inference stream")

	out := make(chan models.InboundMessage, streamBufferSize)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(out)
		defer close(done)
		defer func() { _ = conn.Close() }()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.logger.Warn().Err(err).Msg("Inference stream closed unexpectedly")
				}

				return
			}

			var msg models.InboundMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				c.logger.Debug().Err(err).Msg("Skipping malformed stream message")
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
