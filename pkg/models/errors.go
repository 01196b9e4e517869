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

package models

import "errors"

var (
	// ErrNotFound is returned when the backend has no such resource.
	ErrNotFound = errors.New("resource not found")
	// ErrParse is returned when a backend response cannot be decoded.
	ErrParse = errors.New("malformed backend response")
	// ErrTransport is returned when a backend call fails in transit or with a non-2xx status.
	ErrTransport = errors.New("backend request failed")
)
