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
	"fmt"

	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/stage"
)

// Regions returns the counting zones of the loaded app config.
func (c *Controller) Regions() []models.Region {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]models.Region(nil), c.appConfig.PeopleCountInRegions.Regions...)
}

// BeginZone opens the zone editor on regionID.
func (c *Controller) BeginZone(regionID string) error {
	c.mu.RLock()
	solution := c.solution
	c.mu.RUnlock()

	if solution != models.PeopleCountInRegions {
		return ErrRegionsUnsupported
	}

	if _, err := c.enter(stage.ZoneSelection, stage.ParameterSelection); err != nil {
		return err
	}

	c.mu.Lock()
	c.selectedRegion = regionID
	c.mu.Unlock()

	return nil
}

// AcceptZone stores region in the backend app config and closes the editor.
// A failed update keeps the editor open and the previous regions in place.
func (c *Controller) AcceptZone(ctx context.Context, region models.Region) error {
	if cur := c.machine.Current(); cur != stage.ZoneSelection {
		return fmt.Errorf("%w: zone editor is not open in %s", stage.ErrIllegalTransition, cur)
	}

	if region.ID == "" {
		c.mu.RLock()
		region.ID = c.selectedRegion
		c.mu.RUnlock()
	}

	if region.ID == "" {
		return fmt.Errorf("%w: region without id", ErrInvalidRegion)
	}

	if region.Right <= region.Left || region.Bottom <= region.Top {
		return fmt.Errorf("%w: %s is empty", ErrInvalidRegion, region.ID)
	}

	regions := models.UpsertRegion(c.Regions(), region)

	if err := c.deps.AppConfig.PatchRegions(ctx, regions); err != nil {
		c.logger.Error().
			Err(err).
			Str("region_id", region.ID).
			Msg("Failed to update regions")

		return fmt.Errorf("update regions: %w", err)
	}

	c.mu.Lock()
	c.appConfig.PeopleCountInRegions.Regions = regions
	c.selectedRegion = ""
	c.mu.Unlock()

	c.settle(stage.ZoneSelection, stage.ParameterSelection)

	c.logger.Info().Str("region_id", region.ID).Msg("Updated region")

	return nil
}

// CancelZone closes the zone editor without changes.
func (c *Controller) CancelZone() error {
	if _, err := c.enter(stage.ParameterSelection, stage.ZoneSelection); err != nil {
		return err
	}

	c.mu.Lock()
	c.selectedRegion = ""
	c.mu.Unlock()

	return nil
}
