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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/edgeview/pkg/logger"
)

var allStages = []Stage{
	Initial, ParameterLoading, ParameterSelection, ZoneSelection,
	ExtraParameterSelection, InferenceStarting, InferenceRunning, InferenceStopping,
}

func TestStageNames(t *testing.T) {
	for _, s := range allStages {
		parsed, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)

		text, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, s.String(), string(text))
	}

	_, err := Parse("running")
	require.ErrorIs(t, err, ErrUnknownStage)

	_, err = Stage(42).MarshalText()
	require.ErrorIs(t, err, ErrUnknownStage)
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		stage                             Stage
		configuration, initial, inference bool
		loading, transitional             bool
	}{
		{stage: Initial, initial: true},
		{stage: ParameterLoading, initial: true, loading: true, transitional: true},
		{stage: ParameterSelection, configuration: true},
		{stage: ZoneSelection, configuration: true},
		{stage: ExtraParameterSelection, configuration: true},
		{stage: InferenceStarting, inference: true, transitional: true},
		{stage: InferenceRunning, inference: true},
		{stage: InferenceStopping, inference: true, transitional: true},
	}

	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			assert.Equal(t, tt.configuration, tt.stage.IsConfiguration())
			assert.Equal(t, tt.initial, tt.stage.IsInitial())
			assert.Equal(t, tt.inference, tt.stage.IsInference())
			assert.Equal(t, tt.loading, tt.stage.IsLoading())
			assert.Equal(t, tt.transitional, tt.stage.IsTransitional())
		})
	}
}

func TestPredicateGroupsArePartition(t *testing.T) {
	for _, s := range allStages {
		groups := 0

		for _, in := range []bool{s.IsConfiguration(), s.IsInitial(), s.IsInference()} {
			if in {
				groups++
			}
		}

		assert.Equal(t, 1, groups, "stage %s", s)
	}
}

func TestNormalLifecycle(t *testing.T) {
	m := NewMachine(logger.NewTestLogger())

	for _, to := range []Stage{
		ParameterLoading, ParameterSelection,
		ZoneSelection, ParameterSelection,
		ExtraParameterSelection, ParameterSelection,
		InferenceStarting, InferenceRunning,
		InferenceStopping, ParameterSelection,
	} {
		require.NoError(t, m.Transition(to), "-> %s", to)
		assert.Equal(t, to, m.Current())
	}
}

func TestFailureRollbackEdges(t *testing.T) {
	assert.True(t, CanTransition(InferenceStarting, ParameterSelection), "start failure returns to parameter selection")
	assert.True(t, CanTransition(InferenceStopping, InferenceRunning), "stop failure returns to running")
	assert.True(t, CanTransition(ParameterLoading, Initial), "load failure returns to initial")
}

func TestIllegalTransitions(t *testing.T) {
	tests := []struct {
		from, to Stage
	}{
		{Initial, InferenceStarting},
		{ParameterSelection, InferenceRunning},
		{InferenceRunning, ParameterSelection},
		{InferenceStarting, InferenceStopping},
		{ZoneSelection, InferenceStarting},
		{ExtraParameterSelection, ZoneSelection},
	}

	for _, tt := range tests {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	m := NewMachine(logger.NewTestLogger())
	err := m.Transition(InferenceRunning)

	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, Initial, m.Current())
}

func TestTransitionFrom(t *testing.T) {
	m := NewMachine(logger.NewTestLogger())
	require.NoError(t, m.Transition(ParameterSelection))

	err := m.TransitionFrom(InferenceStarting, ParameterSelection)
	require.ErrorIs(t, err, ErrStaleStage)

	require.NoError(t, m.TransitionFrom(ParameterSelection, InferenceStarting))
	assert.True(t, m.Is(InferenceStarting))

	err = m.TransitionFrom(InferenceStarting, InferenceStopping)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.True(t, m.Is(InferenceStarting))
}

func TestListenersAndReset(t *testing.T) {
	m := NewMachine(logger.NewTestLogger())

	type change struct{ from, to Stage }

	var got []change

	m.Subscribe(func(from, to Stage) { got = append(got, change{from, to}) })

	require.NoError(t, m.Transition(ParameterSelection))
	require.Error(t, m.Transition(InferenceRunning))
	m.Reset()
	m.Reset()

	assert.Equal(t, []change{
		{Initial, ParameterSelection},
		{ParameterSelection, Initial},
	}, got)
}

func TestConcurrentTransitionFromOnlyOneWins(t *testing.T) {
	m := NewMachine(logger.NewTestLogger())
	require.NoError(t, m.Transition(ParameterSelection))

	const workers = 16

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if m.TransitionFrom(ParameterSelection, InferenceStarting) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, InferenceStarting, m.Current())
}
