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

import "github.com/google/uuid"

const (
	StartUploadCommand = "StartUploadInferenceData"

	DefaultMaxDetections       = 5
	DefaultDNNOutputDetections = 50

	defaultV2MaxDetections = 10
	defaultV2Threshold     = 0.3
	defaultMetadataFormat  = 0
	bundleIDStart          = 6
	bundleIDEnd            = 12
)

// NewFileName returns a fresh command parameter file name.
func NewFileName() string {
	return uuid.NewString() + ".json"
}

// DefaultV1 synthesizes the legacy document used when a device has none.
func DefaultV1(fileName string) *ConfigurationV1 {
	return &ConfigurationV1{tree: map[string]interface{}{
		"file_name": fileName,
		"commands":  []interface{}{
			map[string]interface{}{
				"command_name": StartUploadCommand,
				"parameters":   map[string]interface{}{
					keyMode: float64(modeSendImage),
					keyPPL:  map[string]interface{}{
						"input_height":          float64(DefaultInputHeight),
						"input_width":           float64(DefaultInputWidth),
						"max_detections":        float64(DefaultMaxDetections),
						"dnn_output_detections": float64(DefaultDNNOutputDetections),
						"threshold":             DefaultThreshold,
					},
				},
			},
		},
	}}
}

// BundleID derives the AI model bundle id from a full model id: the
// characters at [6, 12), or fewer when the id is shorter.
func BundleID(modelID string) string {
	if len(modelID) <= bundleIDStart {
		return ""
	}

	if len(modelID) < bundleIDEnd {
		return modelID[bundleIDStart:]
	}

	return modelID[bundleIDStart:bundleIDEnd]
}

func defaultCustomSettings(modelID string) map[string]interface{} {
	return map[string]interface{}{
		"ai_models":         defaultAIModels(modelID),
		"metadata_settings": map[string]interface{}{
			"format": float64(defaultMetadataFormat),
		},
	}
}

func defaultAIModels(modelID string) map[string]interface{} {
	return map[string]interface{}{
		"detection": map[string]interface{}{
			"ai_model_bundle_id": BundleID(modelID),
			"parameters":         defaultDetectionParameters(),
		},
	}
}

func defaultDetectionParameters() map[string]interface{} {
	return map[string]interface{}{
		"max_detections": float64(defaultV2MaxDetections),
		"threshold":      defaultV2Threshold,
		"input_width":    float64(DefaultInputWidth),
		"input_height":   float64(DefaultInputHeight),
	}
}

// FillDefaults completes missing custom settings of a V2 document and stamps
// the bundle id derived from modelID. The boolean reports whether anything
// other than the bundle id had to be filled in, i.e. whether the device copy
// is incomplete and should be pushed.
func FillDefaults(doc *ConfigurationV2, modelID string) (*ConfigurationV2, bool) {
	tree := doc.Tree()
	ea := ensureMap(tree, v2Key)
	filled := false

	cs, ok := asMap(ea["custom_settings"])
	switch {
	case !ok || !truthy(cs["ai_models"]):
		cs = defaultCustomSettings(modelID)
		ea["custom_settings"] = cs
		filled = true
	default:
		models := ensureMap(cs, "ai_models")

		det, ok := asMap(models["detection"])
		if !ok {
			cs["ai_models"] = defaultAIModels(modelID)
			filled = true
		} else if _, ok := asMap(det["parameters"]); !ok {
			det["parameters"] = defaultDetectionParameters()
			filled = true
		}

		if _, ok := asMap(cs["metadata_settings"]); !ok {
			cs["metadata_settings"] = map[string]interface{}{"format": float64(defaultMetadataFormat)}
			filled = true
		}
	}

	ensureMap(cs, "ai_models", "detection")["ai_model_bundle_id"] = BundleID(modelID)

	return &ConfigurationV2{tree: tree}, filled
}
