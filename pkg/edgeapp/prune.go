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

// Prune removes every null value from the tree in place, recursing through
// nested objects and arrays, and returns the tree for chaining.
func Prune(tree map[string]interface{}) map[string]interface{} {
	for k, v := range tree {
		if v == nil {
			delete(tree, k)
			continue
		}

		tree[k] = pruneValue(v)
	}

	return tree
}

func pruneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return Prune(t)
	case []interface{}:
		out := t[:0]

		for _, e := range t {
			if e == nil {
				continue
			}

			out = append(out, pruneValue(e))
		}

		return out
	}

	return v
}
