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

// Package models holds the data types shared by the console packages.
package models

import (
	"errors"
	"fmt"
)

var ErrUnknownSolutionType = errors.New("unknown solution type")

// SolutionType selects the telemetry shape produced by the device.
type SolutionType string

const (
	PeopleCount          SolutionType = "PeopleCount"
	PeopleCountInRegions SolutionType = "PeopleCountInRegions"
	Heatmap              SolutionType = "Heatmap"
)

func (s SolutionType) Valid() bool {
	switch s {
	case PeopleCount, PeopleCountInRegions, Heatmap:
		return true
	}

	return false
}

// ParseSolutionType validates a wire value.
func ParseSolutionType(v string) (SolutionType, error) {
	s := SolutionType(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSolutionType, v)
	}

	return s, nil
}

// Mode is the top-level console screen.
type Mode string

const (
	ModeRealtime Mode = "realtime"
	ModeHistory  Mode = "history"
)

func (m Mode) Valid() bool {
	return m == ModeRealtime || m == ModeHistory
}
