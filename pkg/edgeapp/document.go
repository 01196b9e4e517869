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
	"encoding/json"
	"fmt"
)

// Schema identifies a remote configuration variant.
type Schema string

const (
	SchemaV1 Schema = "v1"
	SchemaV2 Schema = "v2"

	// v2Key is the discriminator: its presence marks a V2 document.
	v2Key = "edge_app"
)

// Document is a remote configuration. It is implemented only by
// *ConfigurationV1 and *ConfigurationV2, and values are never mutated after
// construction: every transformation returns a new Document.
type Document interface {
	Schema() Schema
	// Tree returns a deep copy of the underlying JSON object.
	Tree() map[string]interface{}
	json.Marshaler
	sealed()
}

// ConfigurationV1 is the legacy command-list schema.
type ConfigurationV1 struct {
	tree map[string]interface{}
}

// ConfigurationV2 is the structured edge_app schema.
type ConfigurationV2 struct {
	tree map[string]interface{}
}

func (*ConfigurationV1) Schema() Schema { return SchemaV1 }
func (*ConfigurationV2) Schema() Schema { return SchemaV2 }

func (d *ConfigurationV1) Tree() map[string]interface{} { return copyTree(d.tree) }
func (d *ConfigurationV2) Tree() map[string]interface{} { return copyTree(d.tree) }

func (d *ConfigurationV1) MarshalJSON() ([]byte, error) { return json.Marshal(d.tree) }
func (d *ConfigurationV2) MarshalJSON() ([]byte, error) { return json.Marshal(d.tree) }

func (*ConfigurationV1) sealed() {}
func (*ConfigurationV2) sealed() {}

// FileName returns the command parameter file name, if any.
func (d *ConfigurationV1) FileName() string {
	name, _ := d.tree["file_name"].(string)
	return name
}

// commands returns the command objects in order, skipping malformed entries.
func (d *ConfigurationV1) commands() []map[string]interface{} {
	list, _ := d.tree["commands"].([]interface{})
	out := make([]map[string]interface{}, 0, len(list))

	for _, c := range list {
		if m, ok := asMap(c); ok {
			out = append(out, m)
		}
	}

	return out
}

// lastParameters returns the parameters of the last command that has any.
func (d *ConfigurationV1) lastParameters() (map[string]interface{}, bool) {
	var last map[string]interface{}

	for _, c := range d.commands() {
		if p, ok := asMap(c["parameters"]); ok {
			last = p
		}
	}

	return last, last != nil
}

func (d *ConfigurationV2) edgeApp() map[string]interface{} {
	m, _ := asMap(d.tree[v2Key])
	return m
}

// Decode parses raw JSON into the matching Document variant.
func Decode(raw []byte) (Document, error) {
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return FromTree(tree)
}

// FromTree wraps a decoded JSON object. The tree is copied.
func FromTree(tree map[string]interface{}) (Document, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidDocument)
	}

	if v, ok := tree[v2Key]; ok {
		if _, isMap := asMap(v); !isMap {
			return nil, fmt.Errorf("%w: %s is not an object", ErrInvalidDocument, v2Key)
		}

		return &ConfigurationV2{tree: copyTree(tree)}, nil
	}

	if _, ok := tree["commands"].([]interface{}); !ok {
		return nil, fmt.Errorf("%w: commands is not a list", ErrInvalidDocument)
	}

	return &ConfigurationV1{tree: copyTree(tree)}, nil
}

// withTree builds a document of the same variant around an already-owned tree.
func withTree(doc Document, tree map[string]interface{}) Document {
	switch doc.(type) {
	case *ConfigurationV1:
		return &ConfigurationV1{tree: tree}
	case *ConfigurationV2:
		return &ConfigurationV2{tree: tree}
	}

	panic(fmt.Sprintf("edgeapp: unknown document type %T", doc))
}
