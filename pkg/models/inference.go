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

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InferenceKind is the recognized shape of an inference payload, decided once
// at decode time. Keys are probed in priority order: people_count,
// people_count_in_regions, heatmap.
type InferenceKind int

const (
	ObjectDetectionOnly InferenceKind = iota
	PeopleCountKind
	PeopleCountInRegionsKind
	HeatmapKind
)

func (k InferenceKind) String() string {
	switch k {
	case ObjectDetectionOnly:
		return "object_detection"
	case PeopleCountKind:
		return "people_count"
	case PeopleCountInRegionsKind:
		return "people_count_in_regions"
	case HeatmapKind:
		return "heatmap"
	}

	return fmt.Sprintf("InferenceKind(%d)", int(k))
}

type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

type Detection struct {
	ClassID     int         `json:"class_id"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Score       float64     `json:"score"`
}

type Perception struct {
	ObjectDetectionList []Detection `json:"object_detection_list"`
}

// Inference is one decoded inference payload.
type Inference struct {
	Kind                 InferenceKind
	Perception           Perception
	PeopleCount          int
	PeopleCountInRegions map[string]int
	Heatmap              [][]float64
}

type inferenceWire struct {
	Perception           Perception      `json:"perception"`
	PeopleCount          json.RawMessage `json:"people_count,omitempty"`
	PeopleCountInRegions json.RawMessage `json:"people_count_in_regions,omitempty"`
	Heatmap              json.RawMessage `json:"heatmap,omitempty"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func (i *Inference) UnmarshalJSON(b []byte) error {
	var w inferenceWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*i = Inference{Perception: w.Perception}

	switch {
	case present(w.PeopleCount):
		i.Kind = PeopleCountKind
		if err := json.Unmarshal(w.PeopleCount, &i.PeopleCount); err != nil {
			return fmt.Errorf("people_count: %w", err)
		}
	case present(w.PeopleCountInRegions):
		i.Kind = PeopleCountInRegionsKind
		if err := json.Unmarshal(w.PeopleCountInRegions, &i.PeopleCountInRegions); err != nil {
			return fmt.Errorf("people_count_in_regions: %w", err)
		}
	case present(w.Heatmap):
		i.Kind = HeatmapKind
		if err := json.Unmarshal(w.Heatmap, &i.Heatmap); err != nil {
			return fmt.Errorf("heatmap: %w", err)
		}
	}

	return nil
}

func (i Inference) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"perception": i.Perception,
	}

	switch i.Kind {
	case PeopleCountKind:
		out["people_count"] = i.PeopleCount
	case PeopleCountInRegionsKind:
		out["people_count_in_regions"] = i.PeopleCountInRegions
	case HeatmapKind:
		out["heatmap"] = i.Heatmap
	case ObjectDetectionOnly:
	}

	return json.Marshal(out)
}
