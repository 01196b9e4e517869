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

// Package edgeapp maps the console's canonical detection parameters onto the
// two remote edge-app configuration schemas and back.
package edgeapp

import "math"

const (
	MinThreshold     = 0.0
	DefaultThreshold = 0.5
	MaxThreshold     = 1.0

	// Upload interval bounds, in seconds.
	MinUploadInterval     = 0.1
	DefaultUploadInterval = 1.0
	MaxUploadInterval     = 600.0

	DefaultSendImage   = true
	DefaultInputWidth  = 320
	DefaultInputHeight = 320
	DefaultModelID     = ""
)

// Params is the schema-independent view of the tunable session parameters.
type Params struct {
	ModelID        string  `json:"model_id"`
	Threshold      float64 `json:"detection_threshold"`
	UploadInterval float64 `json:"upload_interval"`
	SendImage      bool    `json:"send_image"`
	InputWidth     int     `json:"input_width"`
	InputHeight    int     `json:"input_height"`
}

func DefaultParams() Params {
	return Params{
		ModelID:        DefaultModelID,
		Threshold:      DefaultThreshold,
		UploadInterval: DefaultUploadInterval,
		SendImage:      DefaultSendImage,
		InputWidth:     DefaultInputWidth,
		InputHeight:    DefaultInputHeight,
	}
}

// ClampThreshold forces t into [MinThreshold, MaxThreshold]. NaN maps to the default.
func ClampThreshold(t float64) float64 {
	return clamp(t, MinThreshold, MaxThreshold, DefaultThreshold)
}

// ClampUploadInterval forces s into [MinUploadInterval, MaxUploadInterval]. NaN maps to the default.
func ClampUploadInterval(s float64) float64 {
	return clamp(s, MinUploadInterval, MaxUploadInterval, DefaultUploadInterval)
}

func clamp(v, lo, hi, def float64) float64 {
	switch {
	case math.IsNaN(v):
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}

	return v
}

// Normalize clamps every bounded field and replaces non-positive dimensions.
func (p Params) Normalize() Params {
	p.Threshold = ClampThreshold(p.Threshold)
	p.UploadInterval = ClampUploadInterval(p.UploadInterval)

	if p.InputWidth <= 0 {
		p.InputWidth = DefaultInputWidth
	}

	if p.InputHeight <= 0 {
		p.InputHeight = DefaultInputHeight
	}

	return p
}
