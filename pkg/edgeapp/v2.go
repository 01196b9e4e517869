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

import (
	"math"
	"strings"

	"github.com/samber/lo"
)

const maxProcessState = 2

var (
	detectionPath  = []string{"custom_settings", "ai_models", "detection"}
	inputTensorKey = []string{"common_settings", "port_settings", "input_tensor", "enabled"}
	frameRatePath  = []string{"common_settings", "pq_settings", "frame_rate"}
)

func parseV2(d *ConfigurationV2) Params {
	p := DefaultParams()
	ea := d.edgeApp()

	if det, ok := lookupMap(ea, detectionPath...); ok {
		if w, ok := lookupNumber(det, "parameters", "input_width"); ok {
			p.InputWidth = int(w)
		}

		if h, ok := lookupNumber(det, "parameters", "input_height"); ok {
			p.InputHeight = int(h)
		}

		if t, ok := lookupNumber(det, "parameters", "threshold"); ok {
			p.Threshold = ClampThreshold(t)
		}
	}

	enabled, _ := lookup(ea, inputTensorKey...)
	p.SendImage, _ = enabled.(bool)

	if num, ok := lookupNumber(ea, append(frameRatePath, "num")...); ok {
		denom, _ := lookupNumber(ea, append(frameRatePath, "denom")...)
		p.UploadInterval = ClampUploadInterval(FrameRateToInterval(num, denom))
	}

	return p
}

func diffV2(d *ConfigurationV2, p Params) bool {
	ea := d.edgeApp()

	if enabled, ok := lookup(ea, inputTensorKey...); !ok || enabled != p.SendImage {
		return true
	}

	num, ok := lookupNumber(ea, append(frameRatePath, "num")...)
	if !ok {
		return true
	}

	denom, _ := lookupNumber(ea, append(frameRatePath, "denom")...)
	if !nearlyEqual(FrameRateToInterval(num, denom), p.UploadInterval) {
		return true
	}

	det, ok := lookupMap(ea, detectionPath...)
	if !ok {
		return false
	}

	if t, ok := lookupNumber(det, "parameters", "threshold"); !ok || !nearlyEqual(t, p.Threshold) {
		return true
	}

	if p.ModelID != "" {
		if bundle, _ := det["ai_model_bundle_id"].(string); bundle != BundleID(p.ModelID) {
			return true
		}
	}

	return false
}

func applyV2(tree map[string]interface{}, p Params) {
	ea, ok := asMap(tree[v2Key])
	if !ok {
		return
	}

	if cs, ok := asMap(ea["common_settings"]); ok {
		ensureMap(cs, "port_settings", "input_tensor")["enabled"] = p.SendImage

		fr := ensureMap(cs, "pq_settings", "frame_rate")
		denom, _ := number(fr["denom"])
		fr["num"] = IntervalToFrameRate(p.UploadInterval, denom)
	}

	det, ok := lookupMap(ea, detectionPath...)
	if !ok {
		return
	}

	params := ensureMap(det, "parameters")
	params["threshold"] = p.Threshold

	if params["input_width"] != nil {
		params["input_width"] = p.InputWidth
	}

	if params["input_height"] != nil {
		params["input_height"] = p.InputHeight
	}

	if p.ModelID != "" {
		det["ai_model_bundle_id"] = BundleID(p.ModelID)
	}
}

func validateV2(ea map[string]interface{}, knownModelIDs []string) []string {
	var problems []string

	det, _ := lookupMap(ea, detectionPath...)

	bundle, _ := det["ai_model_bundle_id"].(string)
	if bundle == "" || !lo.SomeBy(knownModelIDs, func(id string) bool { return strings.Contains(id, bundle) }) {
		problems = append(problems, "Invalid model ID")
	}

	if w, ok := lookupNumber(det, "parameters", "input_width"); ok && w < 0 {
		problems = append(problems, "custom_settings.ai_models.detection.parameters.input_width can't be < 0")
	}

	if h, ok := lookupNumber(det, "parameters", "input_height"); ok && h < 0 {
		problems = append(problems, "custom_settings.ai_models.detection.parameters.input_height can't be < 0")
	}

	if t, ok := lookupNumber(det, "parameters", "threshold"); ok && (t < MinThreshold || t > MaxThreshold || math.IsNaN(t)) {
		problems = append(problems, "custom_settings.ai_models.detection.parameters.threshold out of bounds")
	}

	cs, hasCommon := lookupMap(ea, "common_settings")
	state, hasState := lookupNumber(cs, "process_state")

	if !hasCommon || (hasState && (state < 0 || state > maxProcessState)) {
		problems = append(problems, "Invalid common_settings.process_state value, valid values are: [0, 1, 2]")
	}

	return problems
}
