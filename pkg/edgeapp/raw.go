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
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ApplyRaw validates a hand-edited replacement for held and merges it.
//
// A V2 replacement swaps the whole edge_app object. A V1 replacement is read
// from its last command's parameters, which are copied into each held command
// carrying the same keys. Failure leaves held untouched.
func ApplyRaw(held Document, raw []byte, knownModelIDs []string) (Document, error) {
	edited, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	if edited.Schema() != held.Schema() {
		return nil, fmt.Errorf("%w: device uses %s, got %s", ErrSchemaMismatch, held.Schema(), edited.Schema())
	}

	tree := held.Tree()

	switch e := edited.(type) {
	case *ConfigurationV2:
		if _, ok := lookupMap(e.edgeApp(), append(detectionPath, "parameters")...); !ok {
			return nil, &ValidationError{Problems: []string{"`parameters` field missing"}}
		}

		if problems := validateV2(e.edgeApp(), knownModelIDs); len(problems) > 0 {
			return nil, &ValidationError{Problems: problems}
		}

		tree[v2Key] = copyTree(e.edgeApp())
	case *ConfigurationV1:
		params, ok := e.lastParameters()
		if !ok {
			return nil, &ValidationError{Problems: []string{"`PPLParameter` field missing"}}
		}

		if problems := validateV1Parameters(params, knownModelIDs); len(problems) > 0 {
			return nil, &ValidationError{Problems: problems}
		}

		mergeV1(tree, params)
	}

	return withTree(held, Prune(tree)), nil
}

// ResolveModelID maps a V2 bundle id back to the first known model id that
// contains it. Full ids and unknown bundles are returned unchanged.
func ResolveModelID(id string, knownModelIDs []string) string {
	if id == "" || lo.Contains(knownModelIDs, id) {
		return id
	}

	if full, ok := lo.Find(knownModelIDs, func(m string) bool { return strings.Contains(m, id) }); ok {
		return full
	}

	return id
}

// ModelIDOf returns the model identifier recorded in doc: the V1 ModelId of
// the last command or the V2 detection bundle id.
func ModelIDOf(doc Document) string {
	switch d := doc.(type) {
	case *ConfigurationV1:
		params, _ := d.lastParameters()
		id, _ := params[keyModelID].(string)

		return id
	case *ConfigurationV2:
		det, _ := lookupMap(d.edgeApp(), detectionPath...)
		id, _ := det["ai_model_bundle_id"].(string)

		return id
	}

	return ""
}
