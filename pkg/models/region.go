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

package models

import "github.com/samber/lo"

// Region is an axis-aligned counting zone in input pixel space.
type Region struct {
	ID     string  `json:"id" yaml:"id"`
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// DefaultRegions is used until the backend supplies a valid region list.
func DefaultRegions() []Region {
	return []Region{
		{ID: "region1", Left: 0, Top: 0, Right: 150, Bottom: 320},
		{ID: "region2", Left: 170, Top: 0, Right: 320, Bottom: 320},
	}
}

// UpsertRegion replaces the region with the same id or appends it.
func UpsertRegion(regions []Region, r Region) []Region {
	if lo.ContainsBy(regions, func(existing Region) bool { return existing.ID == r.ID }) {
		return lo.Map(regions, func(existing Region, _ int) Region {
			if existing.ID == r.ID {
				return r
			}

			return existing
		})
	}

	return append(append([]Region(nil), regions...), r)
}

type PeopleCountSettings struct {
	BBoxToPointRatio *float64 `json:"bbox_to_point_ratio,omitempty"`
}

type RegionSettings struct {
	BBoxToPointRatio *float64 `json:"bbox_to_point_ratio,omitempty"`
	Regions          []Region `json:"regions,omitempty"`
}

type HeatmapSettings struct {
	BBoxToPointRatio *float64 `json:"bbox_to_point_ratio,omitempty"`
	LastValidFrame   *int     `json:"last_valid_frame,omitempty"`
	ImageSizeW       *int     `json:"image_size_w,omitempty"`
	ImageSizeH       *int     `json:"image_size_h,omitempty"`
	GridNumW         *int     `json:"grid_num_w,omitempty"`
	GridNumH         *int     `json:"grid_num_h,omitempty"`
}

// AppConfig is the backend's per-solution processing configuration.
type AppConfig struct {
	PeopleCount          PeopleCountSettings `json:"people_count_settings"`
	PeopleCountInRegions RegionSettings      `json:"people_count_in_regions_settings"`
	Heatmap              HeatmapSettings     `json:"heatmap_settings"`
}

// DefaultAppConfig mirrors the backend defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		PeopleCount: PeopleCountSettings{BBoxToPointRatio: lo.ToPtr(0.9)},
		PeopleCountInRegions: RegionSettings{
			BBoxToPointRatio: lo.ToPtr(0.9),
			Regions:          DefaultRegions(),
		},
		Heatmap: HeatmapSettings{
			BBoxToPointRatio: lo.ToPtr(0.9),
			LastValidFrame:   lo.ToPtr(600),
			ImageSizeW:       lo.ToPtr(320),
			ImageSizeH:       lo.ToPtr(320),
			GridNumW:         lo.ToPtr(8),
			GridNumH:         lo.ToPtr(8),
		},
	}
}

// WithDefaults fills every missing setting from DefaultAppConfig. An empty or
// malformed region list is replaced as a whole.
func (c AppConfig) WithDefaults() AppConfig {
	d := DefaultAppConfig()

	c.PeopleCount.BBoxToPointRatio = lo.CoalesceOrEmpty(c.PeopleCount.BBoxToPointRatio, d.PeopleCount.BBoxToPointRatio)
	c.PeopleCountInRegions.BBoxToPointRatio = lo.CoalesceOrEmpty(c.PeopleCountInRegions.BBoxToPointRatio,
		d.PeopleCountInRegions.BBoxToPointRatio)

	if !ValidRegions(c.PeopleCountInRegions.Regions) {
		c.PeopleCountInRegions.Regions = d.PeopleCountInRegions.Regions
	}

	h := &c.Heatmap
	h.BBoxToPointRatio = lo.CoalesceOrEmpty(h.BBoxToPointRatio, d.Heatmap.BBoxToPointRatio)
	h.LastValidFrame = lo.CoalesceOrEmpty(h.LastValidFrame, d.Heatmap.LastValidFrame)
	h.ImageSizeW = lo.CoalesceOrEmpty(h.ImageSizeW, d.Heatmap.ImageSizeW)
	h.ImageSizeH = lo.CoalesceOrEmpty(h.ImageSizeH, d.Heatmap.ImageSizeH)
	h.GridNumW = lo.CoalesceOrEmpty(h.GridNumW, d.Heatmap.GridNumW)
	h.GridNumH = lo.CoalesceOrEmpty(h.GridNumH, d.Heatmap.GridNumH)

	return c
}

// ValidRegions reports whether the list is non-empty and every region has an id.
func ValidRegions(regions []Region) bool {
	return len(regions) > 0 && lo.EveryBy(regions, func(r Region) bool { return r.ID != "" })
}
