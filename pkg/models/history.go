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

import "time"

// HistoryRecord pairs a timestamp with an inference and, for directory
// playback, the stored image.
type HistoryRecord struct {
	Image     string    `json:"image,omitempty"`
	Inference Inference `json:"inference"`
	Timestamp string    `json:"timestamp"`
}

type HistoryBatch struct {
	Data []HistoryRecord `json:"data"`
}

// HistorySelector picks the source of a playback batch. Exactly one of
// Directory or the From/To range is used; Directory wins when set.
type HistorySelector struct {
	Directory string    `json:"directory,omitempty"`
	From      time.Time `json:"from,omitempty"`
	To        time.Time `json:"to,omitempty"`
}

func (s HistorySelector) WithImages() bool {
	return s.Directory != ""
}

// PeopleCountSeries extracts the people count samples from the batch.
func (b HistoryBatch) PeopleCountSeries() []PeopleCountTelemetry {
	out := make([]PeopleCountTelemetry, 0, len(b.Data))

	for _, r := range b.Data {
		if r.Timestamp == "" || r.Inference.Kind != PeopleCountKind {
			continue
		}

		out = append(out, PeopleCountTelemetry{Timestamp: r.Timestamp, PeopleCount: r.Inference.PeopleCount})
	}

	return out
}

// RegionCountSeries extracts the per-region samples from the batch.
func (b HistoryBatch) RegionCountSeries() []RegionCountTelemetry {
	out := make([]RegionCountTelemetry, 0, len(b.Data))

	for _, r := range b.Data {
		if r.Timestamp == "" || r.Inference.Kind != PeopleCountInRegionsKind {
			continue
		}

		out = append(out, RegionCountTelemetry{Timestamp: r.Timestamp, PeopleCountInRegions: r.Inference.PeopleCountInRegions})
	}

	return out
}
