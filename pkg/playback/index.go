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

// Package playback navigates a fetched batch of historical inference records.
package playback

import (
	"sync"

	"github.com/carverauto/edgeview/pkg/models"
)

// Status is a point-in-time view of the index.
type Status struct {
	Cursor    int  `json:"cursor"`
	Length    int  `json:"length"`
	AutoRun   bool `json:"auto_run"`
	Available bool `json:"available"`
}

// Index is a clamped cursor over an ordered history batch with an optional
// timer-driven auto-advance. An empty index reports cursor -1 and ignores
// every navigation request.
type Index struct {
	mu        sync.RWMutex
	records   []models.HistoryRecord
	cursor    int
	autoRun   bool
	available bool
}

func NewIndex() *Index {
	return &Index{cursor: -1}
}

// Start loads batch with the cursor on the first record. Auto-run stays off.
func (ix *Index) Start(batch models.HistoryBatch) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.records = batch.Data
	ix.available = true
	ix.autoRun = false
	ix.cursor = -1

	if len(ix.records) > 0 {
		ix.cursor = 0
	}
}

// Stop discards the batch.
func (ix *Index) Stop() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.records = nil
	ix.available = false
	ix.autoRun = false
	ix.cursor = -1
}

// Next moves forward one record and suspends auto-run.
func (ix *Index) Next() bool {
	return ix.step(1)
}

// Previous moves back one record and suspends auto-run.
func (ix *Index) Previous() bool {
	return ix.step(-1)
}

func (ix *Index) step(delta int) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(ix.records) == 0 {
		return false
	}

	ix.autoRun = false

	return ix.seekLocked(ix.cursor + delta)
}

// Seek moves to position i, clamped into range, and suspends auto-run.
func (ix *Index) Seek(i int) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(ix.records) == 0 {
		return false
	}

	ix.autoRun = false

	return ix.seekLocked(i)
}

// seekLocked reports whether the cursor moved.
func (ix *Index) seekLocked(i int) bool {
	i = max(0, min(i, len(ix.records)-1))
	moved := i != ix.cursor
	ix.cursor = i

	return moved
}

// Tick advances auto-run by one record. Reaching the last record stops
// auto-run without wrapping.
func (ix *Index) Tick() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !ix.available || !ix.autoRun || len(ix.records) == 0 {
		return false
	}

	if ix.cursor+1 > len(ix.records)-1 {
		ix.autoRun = false
		return false
	}

	ix.cursor++

	return true
}

// TogglePlayback flips auto-run and returns the new value.
func (ix *Index) TogglePlayback() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(ix.records) == 0 {
		return false
	}

	ix.autoRun = !ix.autoRun

	return ix.autoRun
}

// Current returns the record under the cursor.
func (ix *Index) Current() (models.HistoryRecord, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.cursor < 0 {
		return models.HistoryRecord{}, false
	}

	return ix.records[ix.cursor], true
}

// Batch returns the loaded records.
func (ix *Index) Batch() models.HistoryBatch {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return models.HistoryBatch{Data: ix.records}
}

func (ix *Index) Status() Status {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return Status{
		Cursor:    ix.cursor,
		Length:    len(ix.records),
		AutoRun:   ix.autoRun,
		Available: ix.available,
	}
}
