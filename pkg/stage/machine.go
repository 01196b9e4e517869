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

package stage

import (
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/carverauto/edgeview/pkg/logger"
)

// transitions lists the legal edges. Initial is also reachable from anywhere
// through Reset.
//
//nolint:gochecknoglobals // immutable lookup table
var transitions = map[Stage][]Stage{
	Initial:                 {ParameterLoading, ParameterSelection},
	ParameterLoading:        {ParameterSelection, Initial},
	ParameterSelection:      {ParameterLoading, ZoneSelection, ExtraParameterSelection, InferenceStarting},
	ZoneSelection:           {ParameterSelection, ParameterLoading},
	ExtraParameterSelection: {ParameterSelection, ParameterLoading},
	InferenceStarting:       {InferenceRunning, ParameterSelection},
	InferenceRunning:        {InferenceStopping},
	InferenceStopping:       {ParameterSelection, InferenceRunning},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Stage) bool {
	return lo.Contains(transitions[from], to)
}

// Listener observes every stage change. Listeners run synchronously after the
// change is visible and must not call back into the machine.
type Listener func(from, to Stage)

// Machine holds the authoritative session stage.
type Machine struct {
	mu        sync.RWMutex
	current   Stage
	listeners []Listener
	logger    logger.Logger
}

// NewMachine returns a machine in the Initial stage.
func NewMachine(log logger.Logger) *Machine {
	return &Machine{
		current: Initial,
		logger:  log,
	}
}

// Current returns the current stage.
func (m *Machine) Current() Stage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// Is reports whether the machine is in s.
func (m *Machine) Is(s Stage) bool {
	return m.Current() == s
}

// Subscribe registers l for all subsequent changes.
func (m *Machine) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, l)
}

// Transition moves from the current stage to to.
func (m *Machine) Transition(to Stage) error {
	m.mu.Lock()
	from := m.current

	if !CanTransition(from, to) {
		m.mu.Unlock()

		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	m.current = to
	listeners := m.listeners
	m.mu.Unlock()

	m.notify(listeners, from, to)

	return nil
}

// TransitionFrom moves to to only if the machine is still in from.
func (m *Machine) TransitionFrom(from, to Stage) error {
	m.mu.Lock()

	if m.current != from {
		current := m.current
		m.mu.Unlock()

		return fmt.Errorf("%w: expected %s, found %s", ErrStaleStage, from, current)
	}

	if !CanTransition(from, to) {
		m.mu.Unlock()

		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	m.current = to
	listeners := m.listeners
	m.mu.Unlock()

	m.notify(listeners, from, to)

	return nil
}

// Reset returns the machine to Initial from any stage.
func (m *Machine) Reset() {
	m.mu.Lock()
	from := m.current
	m.current = Initial
	listeners := m.listeners
	m.mu.Unlock()

	if from != Initial {
		m.notify(listeners, from, Initial)
	}
}

func (m *Machine) notify(listeners []Listener, from, to Stage) {
	m.logger.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Stage transition")

	for _, l := range listeners {
		l(from, to)
	}
}
