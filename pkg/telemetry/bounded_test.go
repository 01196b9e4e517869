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

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedKeepsLastCapacityInOrder(t *testing.T) {
	const n = DefaultCapacity + 1234

	b := NewBounded[int](0)
	require.Equal(t, DefaultCapacity, b.Cap())

	evictions := 0

	for i := range n {
		if b.Push(i) {
			evictions++
		}

		require.LessOrEqual(t, b.Len(), DefaultCapacity)
	}

	got := b.Snapshot()
	require.Len(t, got, DefaultCapacity)
	assert.Equal(t, n-DefaultCapacity, evictions)

	for i, v := range got {
		if v != n-DefaultCapacity+i {
			t.Fatalf("Snapshot()[%d] = %d, want %d", i, v, n-DefaultCapacity+i)
		}
	}

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, n-1, last)
}

func TestBoundedSmall(t *testing.T) {
	b := NewBounded[string](3)

	_, ok := b.Last()
	assert.False(t, ok)
	assert.Empty(t, b.Snapshot())

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		b.Push(s)
	}

	assert.Equal(t, []string{"c", "d", "e"}, b.Snapshot())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Snapshot())

	b.Push("f")
	assert.Equal(t, []string{"f"}, b.Snapshot())
}

func TestBoundedSnapshotIsACopy(t *testing.T) {
	b := NewBounded[int](2)
	b.Push(1)

	snap := b.Snapshot()
	snap[0] = 99

	assert.Equal(t, []int{1}, b.Snapshot())
}
