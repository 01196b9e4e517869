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

// TimestampLayout is the fixed-width device timestamp (yyyyMMddHHmmssSSS).
const TimestampLayout = "20060102150405.000"

// InboundMessage is one frame of the live processing stream.
type InboundMessage struct {
	Image     string    `json:"image,omitempty"`
	Inference Inference `json:"inference"`
	Timestamp string    `json:"timestamp"`
	DeviceID  string    `json:"deviceId"`
}

// ParseTimestamp converts a device timestamp into a time in UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	if len(ts) == len("20060102150405000") {
		ts = ts[:14] + "." + ts[14:]
	}

	return time.ParseInLocation(TimestampLayout, ts, time.UTC)
}

type StatusResponse struct {
	Status string `json:"status"`
}

// PeopleCountTelemetry is one buffered people count sample.
type PeopleCountTelemetry struct {
	Timestamp   string `json:"timestamp"`
	PeopleCount int    `json:"people_count"`
}

// RegionCountTelemetry is one buffered per-region sample.
type RegionCountTelemetry struct {
	Timestamp            string         `json:"timestamp"`
	PeopleCountInRegions map[string]int `json:"people_count_in_regions"`
}
