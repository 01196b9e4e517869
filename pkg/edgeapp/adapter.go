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

import "fmt"

// Parse extracts canonical parameters from doc. Missing or malformed fields
// fall back to their defaults; Parse never fails. A nil doc yields
// DefaultParams.
func Parse(doc Document) Params {
	switch d := doc.(type) {
	case nil:
		return DefaultParams()
	case *ConfigurationV1:
		return parseV1(d)
	case *ConfigurationV2:
		return parseV2(d)
	}

	panic(fmt.Sprintf("edgeapp: unknown document type %T", doc))
}

// Diff reports whether doc disagrees with p on any of send-image, upload
// interval, model id or detection threshold. A nil doc always differs.
func Diff(doc Document, p Params) bool {
	switch d := doc.(type) {
	case nil:
		return true
	case *ConfigurationV1:
		return diffV1(d, p)
	case *ConfigurationV2:
		return diffV2(d, p)
	}

	panic(fmt.Sprintf("edgeapp: unknown document type %T", doc))
}

// Apply returns a copy of doc with p written into every relevant location and
// all null values pruned. A nil doc is returned unchanged.
func Apply(doc Document, p Params) Document {
	if doc == nil {
		return nil
	}

	tree := doc.Tree()

	switch doc.(type) {
	case *ConfigurationV1:
		applyV1(tree, p)
	case *ConfigurationV2:
		applyV2(tree, p)
	default:
		panic(fmt.Sprintf("edgeapp: unknown document type %T", doc))
	}

	return withTree(doc, Prune(tree))
}

// Validate returns the human-readable constraint violations of doc against the
// device's known model ids. An empty result means doc is acceptable.
func Validate(doc Document, knownModelIDs []string) []string {
	switch d := doc.(type) {
	case nil:
		return []string{"configuration missing"}
	case *ConfigurationV1:
		params, ok := d.lastParameters()
		if !ok {
			return []string{"`PPLParameter` field missing"}
		}

		return validateV1Parameters(params, knownModelIDs)
	case *ConfigurationV2:
		return validateV2(d.edgeApp(), knownModelIDs)
	}

	panic(fmt.Sprintf("edgeapp: unknown document type %T", doc))
}
