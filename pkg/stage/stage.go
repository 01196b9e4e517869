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

// Package stage tracks the session lifecycle of the operator console.
package stage

import (
	"errors"
	"fmt"
)

// Stage is the current phase of a console session.
type Stage int

const (
	Initial Stage = iota
	ParameterLoading
	ParameterSelection
	ZoneSelection
	ExtraParameterSelection
	InferenceStarting
	InferenceRunning
	InferenceStopping
)

var (
	// ErrIllegalTransition is returned when the requested edge is not in the transition table.
	ErrIllegalTransition = errors.New("illegal stage transition")
	// ErrStaleStage is returned by TransitionFrom when the machine has moved on.
	ErrStaleStage = errors.New("stage changed concurrently")
	// ErrUnknownStage is returned when parsing an unrecognized stage name.
	ErrUnknownStage = errors.New("unknown stage")
)

var names = map[Stage]string{
	Initial:                 "initial",
	ParameterLoading:        "parameter_loading",
	ParameterSelection:      "parameter_selection",
	ZoneSelection:           "zone_selection",
	ExtraParameterSelection: "extra_parameter_selection",
	InferenceStarting:       "inference_starting",
	InferenceRunning:        "inference_running",
	InferenceStopping:       "inference_stopping",
}

// String returns the wire name of the stage.
func (s Stage) String() string {
	if name, ok := names[s]; ok {
		return name
	}

	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if _, ok := names[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStage, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Parse converts a wire name into a Stage.
func Parse(name string) (Stage, error) {
	for s, n := range names {
		if n == name {
			return s, nil
		}
	}

	return Initial, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// IsConfiguration reports whether parameters may be edited.
func (s Stage) IsConfiguration() bool {
	return s == ParameterSelection || s == ZoneSelection || s == ExtraParameterSelection
}

// IsInitial reports whether no device configuration is loaded yet.
func (s Stage) IsInitial() bool {
	return s == Initial || s == ParameterLoading
}

// IsInference reports whether a session is starting, running or stopping.
func (s Stage) IsInference() bool {
	return s == InferenceStarting || s == InferenceRunning || s == InferenceStopping
}

// IsLoading reports whether device parameters are being fetched.
func (s Stage) IsLoading() bool {
	return s == ParameterLoading
}

// IsTransitional reports whether an external call is pending. Transitional
// stages block every other start, stop or load request.
func (s Stage) IsTransitional() bool {
	return s == ParameterLoading || s == InferenceStarting || s == InferenceStopping
}
