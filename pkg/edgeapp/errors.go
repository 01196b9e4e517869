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
	"errors"
	"strings"
)

var (
	// ErrInvalidDocument is returned when bytes do not decode into a configuration object.
	ErrInvalidDocument = errors.New("invalid configuration document")
	// ErrSchemaMismatch is returned when a replacement document is not the same variant as the held one.
	ErrSchemaMismatch = errors.New("wrong format")
)

// ValidationError lists every violated constraint of a configuration document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, ", ")
}
