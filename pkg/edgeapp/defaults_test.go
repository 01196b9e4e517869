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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileName(t *testing.T) {
	a, b := NewFileName(), NewFileName()

	assert.True(t, strings.HasSuffix(a, ".json"))
	assert.NotEqual(t, a, b)
}

func TestDefaultV1(t *testing.T) {
	doc := DefaultV1("abc.json")

	assert.Equal(t, "abc.json", doc.FileName())
	assert.Equal(t, DefaultParams(), Parse(doc))
	assert.Empty(t, Validate(doc, []string{""}))

	cmds := doc.commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, StartUploadCommand, cmds[0]["command_name"])

	ppl, ok := lookupMap(cmds[0], "parameters", keyPPL)
	require.True(t, ok)
	assert.InDelta(t, float64(DefaultDNNOutputDetections), ppl["dnn_output_detections"], 0)
	assert.InDelta(t, float64(DefaultMaxDetections), ppl["max_detections"], 0)
}

func TestFillDefaults(t *testing.T) {
	const modelID = "abcdefghijkl"

	tests := []struct {
		name       string
		doc        string
		wantFilled bool
	}{
		{
			name:       "complete document only gets the bundle id",
			doc:        v2Doc,
			wantFilled: false,
		},
		{
			name:       "missing custom settings",
			doc:        `{"edge_app": {"common_settings": {"process_state": 2}}}`,
			wantFilled: true,
		},
		{
			name:       "empty ai models",
			doc:        `{"edge_app": {"custom_settings": {"ai_models": null, "metadata_settings": {"format": 1}}}}`,
			wantFilled: true,
		},
		{
			name:       "missing detection",
			doc:        `{"edge_app": {"custom_settings": {"ai_models": {"other": {}}, "metadata_settings": {"format": 0}}}}`,
			wantFilled: true,
		},
		{
			name:       "missing detection parameters",
			doc:        `{"edge_app": {"custom_settings": {"ai_models": {"detection": {"ai_model_bundle_id": "x"}}, "metadata_settings": {"format": 0}}}}`,
			wantFilled: true,
		},
		{
			name:       "missing metadata settings",
			doc:        `{"edge_app": {"custom_settings": {"ai_models": {"detection": {"parameters": {"threshold": 0.4}}}}}}`,
			wantFilled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok := mustDecode(t, tt.doc).(*ConfigurationV2)
			require.True(t, ok)

			filled, gotFilled := FillDefaults(doc, modelID)

			assert.Equal(t, tt.wantFilled, gotFilled)
			assert.Equal(t, "ghijkl", ModelIDOf(filled))

			_, ok = lookupMap(filled.edgeApp(), append(detectionPath, "parameters")...)
			assert.True(t, ok, "detection parameters present")

			_, ok = lookupMap(filled.edgeApp(), "custom_settings", "metadata_settings")
			assert.True(t, ok, "metadata settings present")
		})
	}
}

func TestFillDefaultsDoesNotMutateInput(t *testing.T) {
	doc, ok := mustDecode(t, `{"edge_app": {}}`).(*ConfigurationV2)
	require.True(t, ok)

	_, _ = FillDefaults(doc, "abcdefghijkl")

	assert.Empty(t, doc.edgeApp())
}

func TestFillDefaultsKeepsExistingParameters(t *testing.T) {
	doc, ok := mustDecode(t, `{"edge_app": {"custom_settings": {"ai_models": {"detection": {"parameters": {"threshold": 0.4}}}}}}`).(*ConfigurationV2)
	require.True(t, ok)

	filled, _ := FillDefaults(doc, "abcdefghijkl")

	threshold, ok := lookupNumber(filled.edgeApp(), append(detectionPath, "parameters", "threshold")...)
	require.True(t, ok)
	assert.InDelta(t, 0.4, threshold, 0)
}
