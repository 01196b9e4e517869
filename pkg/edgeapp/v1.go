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

	"github.com/samber/lo"
)

const (
	modeSendImage   = 1
	modeNoSendImage = 2
	maxMode         = 2

	keyMode           = "Mode"
	keyUploadInterval = "UploadInterval"
	keyModelID        = "ModelId"
	keyPPL            = "PPLParameter"
)

// mergedUploadKeys are copied verbatim from an edited command into every held
// command that already carries them.
var mergedUploadKeys = []string{"FileFormat", "UploadMethod", "UploadMethodIR", "NumberOfImages", "MaxDetectionsPerFrame"}

func modeFor(sendImage bool) float64 {
	if sendImage {
		return modeSendImage
	}

	return modeNoSendImage
}

// parseV1 folds every command into the result; later commands win.
func parseV1(d *ConfigurationV1) Params {
	p := DefaultParams()

	for _, cmd := range d.commands() {
		params, ok := asMap(cmd["parameters"])
		if !ok {
			continue
		}

		mode, hasMode := number(params[keyMode])
		p.SendImage = !hasMode || mode != modeNoSendImage

		if truthy(params[keyUploadInterval]) {
			if v, ok := number(params[keyUploadInterval]); ok {
				p.UploadInterval = ClampUploadInterval(v)
			}
		}

		if id, ok := params[keyModelID].(string); ok && id != "" {
			p.ModelID = id
		}

		ppl, ok := asMap(params[keyPPL])
		if !ok {
			continue
		}

		if w, ok := number(ppl["input_width"]); ok && w != 0 {
			p.InputWidth = int(w)
		}

		if h, ok := number(ppl["input_height"]); ok && h != 0 {
			p.InputHeight = int(h)
		}

		if t, ok := number(ppl["threshold"]); ok && t != 0 {
			p.Threshold = ClampThreshold(t)
		}
	}

	return p
}

func diffV1(d *ConfigurationV1, p Params) bool {
	want := modeFor(p.SendImage)

	for _, cmd := range d.commands() {
		params, _ := asMap(cmd["parameters"])

		if mode, ok := number(params[keyMode]); !ok || mode != want {
			return true
		}

		if ui, ok := number(params[keyUploadInterval]); !ok || !nearlyEqual(ui, p.UploadInterval) {
			return true
		}

		if id, ok := params[keyModelID].(string); !ok || id != p.ModelID {
			return true
		}

		ppl, ok := asMap(params[keyPPL])
		if !ok || !truthy(ppl["threshold"]) {
			continue
		}

		if t, _ := number(ppl["threshold"]); !nearlyEqual(t, p.Threshold) {
			return true
		}
	}

	return false
}

func applyV1(tree map[string]interface{}, p Params) {
	list, _ := tree["commands"].([]interface{})

	for _, c := range list {
		cmd, ok := asMap(c)
		if !ok {
			continue
		}

		params := ensureMap(cmd, "parameters")
		params[keyModelID] = p.ModelID
		params[keyMode] = modeFor(p.SendImage)
		params[keyUploadInterval] = p.UploadInterval

		ppl, ok := asMap(params[keyPPL])
		if !ok {
			continue
		}

		if ppl["threshold"] != nil {
			ppl["threshold"] = p.Threshold
		}

		if ppl["input_width"] != nil {
			ppl["input_width"] = p.InputWidth
		}

		if ppl["input_height"] != nil {
			ppl["input_height"] = p.InputHeight
		}
	}
}

func validateV1Parameters(params map[string]interface{}, knownModelIDs []string) []string {
	var problems []string

	ppl, ok := asMap(params[keyPPL])
	if !ok {
		return []string{"`PPLParameter` field missing"}
	}

	if w, ok := number(ppl["input_width"]); ok && w < 0 {
		problems = append(problems, "PPLParameter.input_width can't be < 0")
	}

	if h, ok := number(ppl["input_height"]); ok && h < 0 {
		problems = append(problems, "PPLParameter.input_height can't be < 0")
	}

	if t, ok := number(ppl["threshold"]); ok && (t < MinThreshold || t > MaxThreshold || math.IsNaN(t)) {
		problems = append(problems, "threshold score out of bounds")
	}

	if id, _ := params[keyModelID].(string); !lo.Contains(knownModelIDs, id) {
		problems = append(problems, "Invalid model ID")
	}

	if mode, ok := number(params[keyMode]); ok && (mode < 0 || mode > maxMode) {
		problems = append(problems, "Invalid Mode value, valid values are: [0, 1, 2]")
	}

	return problems
}

// mergeV1 copies the edited parameters into every held command that already
// carries the corresponding key.
func mergeV1(held map[string]interface{}, edited map[string]interface{}) {
	list, _ := held["commands"].([]interface{})

	for _, c := range list {
		cmd, ok := asMap(c)
		if !ok {
			continue
		}

		params, ok := asMap(cmd["parameters"])
		if !ok {
			continue
		}

		for _, key := range []string{keyPPL, keyModelID, keyUploadInterval, keyMode} {
			if truthy(params[key]) {
				params[key] = deepCopy(edited[key])
			}
		}

		for _, key := range mergedUploadKeys {
			if _, ok := params[key]; ok {
				params[key] = deepCopy(edited[key])
			}
		}
	}
}
