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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/edgeview/pkg/models"
)

// Run drives the background work of the controller until ctx is canceled:
// the live stream pump, the playback ticker and stage event publishing.
func (c *Controller) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.pumpStream(ctx)
		return nil
	})

	g.Go(func() error {
		c.runPlayback(ctx)
		return nil
	})

	if c.deps.Publisher != nil {
		g.Go(func() error {
			c.publishEvents(ctx)
			return nil
		})
	}

	return g.Wait()
}

// pumpStream subscribes to the live feed each time a session starts and
// feeds it through the gate until the session ends.
func (c *Controller) pumpStream(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.streamWake:
		}

		if c.deps.Stream == nil || !c.gate.Active() {
			continue
		}

		subCtx, cancel := context.WithCancel(ctx)

		c.mu.Lock()
		c.streamCancel = cancel
		c.mu.Unlock()

		// the session may have ended before the cancel func was published
		if !c.gate.Active() {
			cancel()
			continue
		}

		msgs, err := c.deps.Stream.Subscribe(subCtx)
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to subscribe to inference stream")
			cancel()

			continue
		}

		c.drain(subCtx, msgs)
		cancel()
	}
}

func (c *Controller) drain(ctx context.Context, msgs <-chan models.InboundMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Warn().Msg("Inference stream closed")
				return
			}

			c.HandleMessage(ctx, &msg)
		}
	}
}

func (c *Controller) runPlayback(ctx context.Context) {
	ticker := time.NewTicker(c.playbackInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Controller) publishEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-c.events:
			if err := c.deps.Publisher.PublishStageChange(ctx, &event); err != nil {
				c.logger.Warn().
					Err(err).
					Str("stage", event.CurrentStage).
					Msg("Failed to publish stage change")
			}
		}
	}
}
