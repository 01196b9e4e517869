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

// Package telemetry gates the live inference stream to the active device and
// keeps capped per-metric sample sequences.
package telemetry

// DefaultCapacity is the number of samples retained per series.
const DefaultCapacity = 3600

// Bounded is a FIFO sequence capped at a fixed capacity. Pushing onto a full
// sequence evicts the oldest element. Bounded is not safe for concurrent use.
type Bounded[T any] struct {
	buf  []T
	head int
	size int
}

// NewBounded returns an empty sequence. A non-positive capacity selects
// DefaultCapacity.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Bounded[T]{buf: make([]T, capacity)}
}

// Push appends item and reports whether the oldest element was evicted.
func (b *Bounded[T]) Push(item T) bool {
	capacity := len(b.buf)

	if b.size < capacity {
		b.buf[(b.head+b.size)%capacity] = item
		b.size++

		return false
	}

	b.buf[b.head] = item
	b.head = (b.head + 1) % capacity

	return true
}

// Snapshot returns the elements oldest first.
func (b *Bounded[T]) Snapshot() []T {
	out := make([]T, b.size)

	for i := range b.size {
		out[i] = b.buf[(b.head+i)%len(b.buf)]
	}

	return out
}

// Last returns the newest element.
func (b *Bounded[T]) Last() (T, bool) {
	var zero T

	if b.size == 0 {
		return zero, false
	}

	return b.buf[(b.head+b.size-1)%len(b.buf)], true
}

func (b *Bounded[T]) Len() int { return b.size }

func (b *Bounded[T]) Cap() int { return len(b.buf) }

// Clear drops every element and releases references held by the buffer.
func (b *Bounded[T]) Clear() {
	clear(b.buf)
	b.head = 0
	b.size = 0
}
