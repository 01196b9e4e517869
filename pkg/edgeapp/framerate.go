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

package edgeapp

import "math"

// framesPerSecond is the device's fixed capture rate.
const framesPerSecond = 30

// FrameRateToInterval converts a frame_rate pair into seconds between updates.
// A non-positive denom is treated as absent.
func FrameRateToInterval(num, denom float64) float64 {
	if denom > 0 {
		return num / denom / framesPerSecond
	}

	return num / framesPerSecond
}

// IntervalToFrameRate is the inverse of FrameRateToInterval for the same denom.
// Results within rounding error of an integer are snapped to it.
func IntervalToFrameRate(interval, denom float64) float64 {
	num := interval * framesPerSecond
	if denom > 0 {
		num *= denom
	}

	if r := math.Round(num); nearlyEqual(r, num) {
		return r
	}

	return num
}
