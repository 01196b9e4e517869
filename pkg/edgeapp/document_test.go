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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v1Doc = `{
  "file_name": "params.json",
  "commands": [
    {
      "command_name": "StartUploadInferenceData",
      "parameters": {
        "Mode": 1,
        "UploadMethod": "BlobStorage",
        "FileFormat": "JPG",
        "UploadInterval": 2,
        "ModelId": "m1",
        "PPLParameter": {"input_width": 300, "input_height": 200, "threshold": 0.5, "max_detections": 5}
      }
    }
  ]
}`

const v2Doc = `{
  "edge_app": {
    "req_info": {"req_id": "r-1"},
    "common_settings": {
      "process_state": 2,
      "log_level": 3,
      "pq_settings": {"frame_rate": {"num": 60, "denom": 1}},
      "port_settings": {"input_tensor": {"enabled": true, "method": 0}, "metadata": {"enabled": true}},
      "number_of_inference_per_message": 1
    },
    "custom_settings": {
      "ai_models": {
        "detection": {
          "ai_model_bundle_id": "ghijkl",
          "parameters": {"max_detections": 10, "threshold": 0.3, "input_width": 320, "input_height": 240}
        }
      },
      "metadata_settings": {"format": 0}
    }
  }
}`

func mustDecode(t *testing.T, raw string) Document {
	t.Helper()

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	return doc
}

func TestDecodeDiscriminatesVariants(t *testing.T) {
	assert.Equal(t, SchemaV1, mustDecode(t, v1Doc).Schema())
	assert.Equal(t, SchemaV2, mustDecode(t, v2Doc).Schema())
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{`[]`, `not json`, `{"edge_app": 3}`, `{"file_name": "x"}`, `null`} {
		_, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidDocument, raw)
	}
}

func TestTreeIsACopy(t *testing.T) {
	doc := mustDecode(t, v1Doc)

	tree := doc.Tree()
	tree["file_name"] = "changed"

	assert.Equal(t, "params.json", doc.(*ConfigurationV1).FileName())
}

func TestPruneRemovesNullsEverywhere(t *testing.T) {
	tree := map[string]interface{}{
		"a": nil,
		"b": map[string]interface{}{
			"c": nil,
			"d": []interface{}{nil, map[string]interface{}{"e": nil, "f": 1.0}, []interface{}{nil, "g"}},
		},
		"h": "keep",
	}

	want := map[string]interface{}{
		"b": map[string]interface{}{
			"d": []interface{}{map[string]interface{}{"f": 1.0}, []interface{}{"g"}},
		},
		"h": "keep",
	}

	if diff := cmp.Diff(want, Prune(tree)); diff != "" {
		t.Fatalf("Prune() mismatch (-want +got):\n%s", diff)
	}
}

func TestPruneDeepNesting(t *testing.T) {
	root := map[string]interface{}{}
	cur := root

	for i := 0; i < 50; i++ {
		next := map[string]interface{}{"nil": nil, "list": []interface{}{nil}}
		cur["next"] = next
		cur = next
	}

	assertNoNulls(t, Prune(root))
}

func assertNoNulls(t *testing.T, v interface{}) {
	t.Helper()

	switch n := v.(type) {
	case nil:
		t.Fatal("found null value")
	case map[string]interface{}:
		for _, e := range n {
			assertNoNulls(t, e)
		}
	case []interface{}:
		for _, e := range n {
			assertNoNulls(t, e)
		}
	}
}
