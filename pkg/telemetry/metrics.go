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
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/carverauto/edgeview/pkg/telemetry"

	metricStreamMessages = "edgeview_stream_messages_total"
	metricEvicted        = "edgeview_telemetry_evicted_total"

	outcomeAccepted      = "accepted"
	outcomeForeignDevice = "foreign_device"
	outcomeInactive      = "inactive"
)

var (
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	meterOnce sync.Once
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	messageCounter metric.Int64Counter
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	evictionCounter metric.Int64Counter
)

func initMeter() {
	meter := otel.Meter(meterName)

	counter, err := meter.Int64Counter(
		metricStreamMessages,
		metric.WithDescription("Inbound stream messages by gate outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	messageCounter = counter

	evicted, err := meter.Int64Counter(
		metricEvicted,
		metric.WithDescription("Telemetry samples evicted from bounded buffers"),
	)
	if err != nil {
		otel.Handle(err)
	}
	evictionCounter = evicted
}

func recordMessage(ctx context.Context, outcome string) {
	meterOnce.Do(initMeter)
	if messageCounter == nil {
		return
	}

	messageCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func recordEviction(ctx context.Context, series string) {
	meterOnce.Do(initMeter)
	if evictionCounter == nil {
		return
	}

	evictionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("series", series)))
}
