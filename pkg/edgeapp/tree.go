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
	"math"
)

const floatTolerance = 1e-9

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// lookup walks nested objects and reports whether the final key holds a non-nil value.
func lookup(m map[string]interface{}, keys ...string) (interface{}, bool) {
	var cur interface{} = m

	for _, k := range keys {
		obj, ok := asMap(cur)
		if !ok {
			return nil, false
		}

		cur, ok = obj[k]
		if !ok || cur == nil {
			return nil, false
		}
	}

	return cur, true
}

func lookupMap(m map[string]interface{}, keys ...string) (map[string]interface{}, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return nil, false
	}

	return asMap(v)
}

func lookupNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return 0, false
	}

	return number(v)
}

// ensureMap returns the object at keys, replacing anything that is not an object.
func ensureMap(m map[string]interface{}, keys ...string) map[string]interface{} {
	cur := m

	for _, k := range keys {
		next, ok := asMap(cur[k])
		if !ok {
			next = map[string]interface{}{}
			cur[k] = next
		}

		cur = next
	}

	return cur
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}

	return 0, false
}

// truthy mirrors the loose presence checks the console has always used for
// optional legacy fields: absent, null, false, zero and "" all count as unset.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}

	if n, ok := number(v); ok {
		return n != 0 && !math.IsNaN(n)
	}

	return true
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}

		return out
	}

	return v
}

func copyTree(m map[string]interface{}) map[string]interface{} {
	out, _ := deepCopy(m).(map[string]interface{})
	return out
}
