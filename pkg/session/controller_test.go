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

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/reconcile"
	"github.com/carverauto/edgeview/pkg/stage"
)

const (
	testDevice = "dev-1"
	testModel  = "m1"

	v1Config = `{"file_name": "p.json", "commands": [{"command_name": "StartUploadInferenceData",
		"parameters": {"Mode": 1, "UploadInterval": 2, "ModelId": "m1", "PPLParameter": {"threshold": 0.5}}}]}`

	v2Config = `{"edge_app": {
		"common_settings": {"process_state": 2, "pq_settings": {"frame_rate": {"num": 60, "denom": 1}},
			"port_settings": {"input_tensor": {"enabled": true}}},
		"custom_settings": {"ai_models": {"detection": {"ai_model_bundle_id": "m1",
			"parameters": {"threshold": 0.3, "input_width": 320, "input_height": 320, "max_detections": 10}}},
			"metadata_settings": {"format": 0}}}}`
)

var errBackend = errors.New("backend unavailable")

type harness struct {
	c         *Controller
	configs   *reconcile.MockConfigStore
	processor *MockProcessor
	history   *MockHistorySource
	stream    *MockStream
	devices   *MockDeviceDirectory
	appConfig *MockAppConfigStore
}

func noSleep(context.Context, time.Duration) error { return nil }

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := &harness{
		configs:   reconcile.NewMockConfigStore(ctrl),
		processor: NewMockProcessor(ctrl),
		history:   NewMockHistorySource(ctrl),
		stream:    NewMockStream(ctrl),
		devices:   NewMockDeviceDirectory(ctrl),
		appConfig: NewMockAppConfigStore(ctrl),
	}

	deps := Dependencies{
		Configs:   h.configs,
		Processor: h.processor,
		History:   h.history,
		Stream:    h.stream,
		Devices:   h.devices,
		AppConfig: h.appConfig,
	}

	opts = append([]Option{WithReconcileOptions(reconcile.WithSleeper(noSleep))}, opts...)
	h.c = New(deps, logger.NewTestLogger(), opts...)

	return h
}

func decode(t *testing.T, raw string) edgeapp.Document {
	t.Helper()

	doc, err := edgeapp.Decode([]byte(raw))
	require.NoError(t, err)

	return doc
}

// load selects the test device and model with the given device configuration.
func (h *harness) load(t *testing.T, config string) {
	t.Helper()

	ctx := context.Background()

	h.devices.EXPECT().GetDevice(gomock.Any(), testDevice).
		Return(models.Device{DeviceID: testDevice, Models: []string{testModel}}, nil)
	h.configs.EXPECT().FetchConfiguration(gomock.Any(), testDevice).Return(decode(t, config), nil)
	h.appConfig.EXPECT().GetAppConfig(gomock.Any()).Return(models.AppConfig{}, nil)
	h.processor.EXPECT().FetchPreviewImage(gomock.Any(), testDevice).Return("preview", nil)

	require.NoError(t, h.c.SelectDevice(ctx, testDevice))
	require.NoError(t, h.c.SelectModel(ctx, testModel))
	require.Equal(t, stage.ParameterSelection, h.c.Stage())
}

func (h *harness) start(t *testing.T) {
	t.Helper()

	h.processor.EXPECT().StartProcessing(gomock.Any(), testDevice, true, models.PeopleCount).
		Return(models.StatusResponse{Status: "started"}, nil)

	require.NoError(t, h.c.StartSession(context.Background(), testDevice))
	require.Equal(t, stage.InferenceRunning, h.c.Stage())
}

func TestSelectModelLoadsParameters(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	p := h.c.Params()
	assert.Equal(t, testModel, p.ModelID)
	assert.InDelta(t, 0.5, p.Threshold, 1e-9)
	assert.InDelta(t, 2.0, p.UploadInterval, 1e-9)

	snap := h.c.Snapshot()
	assert.Equal(t, "preview", snap.PreviewImage)
	assert.Equal(t, edgeapp.SchemaV1, snap.Schema)
	assert.Equal(t, models.DefaultRegions(), snap.AppConfig.PeopleCountInRegions.Regions)
}

func TestSelectModelFailureReturnsToInitial(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.devices.EXPECT().GetDevice(gomock.Any(), testDevice).
		Return(models.Device{DeviceID: testDevice, Models: []string{testModel}}, nil)
	h.configs.EXPECT().FetchConfiguration(gomock.Any(), testDevice).Return(nil, errBackend)

	require.NoError(t, h.c.SelectDevice(ctx, testDevice))
	require.ErrorIs(t, h.c.SelectModel(ctx, testModel), errBackend)
	assert.Equal(t, stage.Initial, h.c.Stage())

	require.ErrorIs(t, h.c.SelectModel(ctx, "unknown"), ErrUnknownModel)
}

func TestStartSessionRequiresDevice(t *testing.T) {
	h := newHarness(t)

	require.ErrorIs(t, h.c.StartSession(context.Background(), ""), ErrNoDevice)
	require.ErrorIs(t, h.c.StopSession(context.Background(), ""), ErrNoDevice)
	assert.Equal(t, stage.Initial, h.c.Stage())
}

func TestStartSessionBeforeLoadIsIllegal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.devices.EXPECT().GetDevice(gomock.Any(), testDevice).
		Return(models.Device{DeviceID: testDevice, Models: []string{testModel}}, nil)
	require.NoError(t, h.c.SelectDevice(ctx, testDevice))

	err := h.c.StartSession(ctx, testDevice)
	require.ErrorIs(t, err, stage.ErrIllegalTransition)
	assert.Equal(t, stage.Initial, h.c.Stage())
}

func TestStartSessionRejectsUnselectedDevice(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	// No StartProcessing expectation: the gomock controller fails the test on any call.
	err := h.c.StartSession(context.Background(), "dev-2")
	require.ErrorIs(t, err, ErrDeviceMismatch)

	snap := h.c.Snapshot()
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.Equal(t, testDevice, snap.DeviceID)
	assert.False(t, snap.StreamActive)
	assert.Equal(t, testDevice, h.c.gate.DeviceID())
	assert.False(t, h.c.HandleMessage(context.Background(), &models.InboundMessage{DeviceID: "dev-2"}))
}

func TestStopSessionRejectsUnselectedDevice(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	h.start(t)

	err := h.c.StopSession(context.Background(), "dev-2")
	require.ErrorIs(t, err, ErrDeviceMismatch)

	assert.Equal(t, stage.InferenceRunning, h.c.Stage())
	assert.True(t, h.c.Snapshot().StreamActive)
	assert.Equal(t, testDevice, h.c.gate.DeviceID())
	assert.True(t, h.c.HandleMessage(context.Background(), &models.InboundMessage{DeviceID: testDevice}))
}

func TestStartAndStopSession(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	h.start(t)

	assert.True(t, h.c.Snapshot().StreamActive)

	_, err := h.c.SetThreshold(0.9)
	require.ErrorIs(t, err, ErrBusy)

	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).
		Return(models.StatusResponse{Status: "stopped"}, nil)

	require.NoError(t, h.c.StopSession(context.Background(), testDevice))
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.False(t, h.c.Snapshot().StreamActive)
}

func TestStartFailureRollsBack(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	h.processor.EXPECT().StartProcessing(gomock.Any(), testDevice, true, models.PeopleCount).
		Return(models.StatusResponse{}, errBackend)

	err := h.c.StartSession(context.Background(), testDevice)
	require.ErrorIs(t, err, errBackend)

	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.False(t, h.c.Snapshot().StreamActive)
	assert.False(t, h.c.HandleMessage(context.Background(), &models.InboundMessage{DeviceID: testDevice}))
}

func TestStopFailureKeepsSessionRunning(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	h.start(t)

	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).Return(models.StatusResponse{}, errBackend)

	require.ErrorIs(t, h.c.StopSession(context.Background(), testDevice), errBackend)
	assert.Equal(t, stage.InferenceRunning, h.c.Stage())
	assert.True(t, h.c.Snapshot().StreamActive)
}

func TestOverlappingStartIsBusy(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	var inner, stopErr error

	h.processor.EXPECT().StartProcessing(gomock.Any(), testDevice, true, models.PeopleCount).
		DoAndReturn(func(ctx context.Context, _ string, _ bool, _ models.SolutionType) (models.StatusResponse, error) {
			inner = h.c.StartSession(ctx, testDevice)
			stopErr = h.c.StopSession(ctx, testDevice)

			return models.StatusResponse{Status: "started"}, nil
		})

	require.NoError(t, h.c.StartSession(context.Background(), testDevice))
	require.ErrorIs(t, inner, ErrBusy)
	require.ErrorIs(t, stopErr, ErrBusy)
	assert.Equal(t, stage.InferenceRunning, h.c.Stage())
}

func TestV1StartPushesOnlyChangedParameters(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	// unchanged parameters: no push
	h.start(t)
	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).Return(models.StatusResponse{}, nil).Times(2)
	require.NoError(t, h.c.StopSession(context.Background(), testDevice))

	_, err := h.c.SetUploadInterval(5)
	require.NoError(t, err)

	h.configs.EXPECT().PatchConfiguration(gomock.Any(), testDevice, gomock.Any()).Return(nil).Times(1)
	h.start(t)
	require.NoError(t, h.c.StopSession(context.Background(), testDevice))
}

func TestV2StartAlwaysPushes(t *testing.T) {
	h := newHarness(t)
	h.load(t, v2Config)

	h.configs.EXPECT().PatchConfiguration(gomock.Any(), testDevice, gomock.Any()).Return(nil).Times(2)
	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).Return(models.StatusResponse{}, nil).Times(2)

	for range 2 {
		h.start(t)
		require.NoError(t, h.c.StopSession(context.Background(), testDevice))
	}
}

func TestUpdateParamsClamps(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	p, err := h.c.UpdateParams(ParamsUpdate{
		Threshold:      ptr(1.7),
		UploadInterval: ptr(0.0),
		SendImage:      ptr(false),
		InputWidth:     ptr(-1),
	})
	require.NoError(t, err)

	assert.InDelta(t, edgeapp.MaxThreshold, p.Threshold, 1e-9)
	assert.InDelta(t, edgeapp.MinUploadInterval, p.UploadInterval, 1e-9)
	assert.False(t, p.SendImage)
	assert.Equal(t, edgeapp.DefaultInputWidth, p.InputWidth)
	assert.Equal(t, p, h.c.Params())
}

func ptr[T any](v T) *T { return &v }

func TestRawEdit(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	require.ErrorIs(t, h.c.CancelRawEdit(), stage.ErrIllegalTransition)
	require.NoError(t, h.c.BeginRawEdit())
	assert.Equal(t, stage.ExtraParameterSelection, h.c.Stage())

	_, err := h.c.ApplyRawConfig([]byte(v2Config))
	require.ErrorIs(t, err, edgeapp.ErrSchemaMismatch)
	assert.Equal(t, stage.ExtraParameterSelection, h.c.Stage())

	_, err = h.c.ApplyRawConfig([]byte(`{"commands": [{"parameters": {"ModelId": "m1", "PPLParameter": {"threshold": 2}}}]}`))

	var verr *edgeapp.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"threshold score out of bounds"}, verr.Problems)
	assert.Equal(t, stage.ExtraParameterSelection, h.c.Stage())

	p, err := h.c.ApplyRawConfig([]byte(`{"commands": [{"parameters": {"Mode": 1, "UploadInterval": 2,
		"ModelId": "m1", "PPLParameter": {"threshold": 0.5}}}]}`))
	require.NoError(t, err)
	assert.Equal(t, testModel, p.ModelID)
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.True(t, h.c.Snapshot().Forced)

	// forced push even though nothing differs
	h.configs.EXPECT().PatchConfiguration(gomock.Any(), testDevice, gomock.Any()).Return(nil).Times(1)
	h.start(t)
	assert.False(t, h.c.Snapshot().Forced)
}

func TestRawEditCancel(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	require.NoError(t, h.c.BeginRawEdit())
	require.NoError(t, h.c.CancelRawEdit())
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())

	doc, err := h.c.RawConfig()
	require.NoError(t, err)
	assert.Equal(t, edgeapp.SchemaV1, doc.Schema())
}

func TestChangeSolutionStopsRunningSession(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	h.start(t)

	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).Return(models.StatusResponse{}, nil)
	h.processor.EXPECT().FetchPreviewImage(gomock.Any(), testDevice).Return("heat", nil)

	require.NoError(t, h.c.ChangeSolution(context.Background(), models.Heatmap))

	snap := h.c.Snapshot()
	assert.Equal(t, stage.ParameterSelection.String(), snap.Stage)
	assert.Equal(t, models.Heatmap, snap.SolutionType)
	assert.Equal(t, "heat", snap.PreviewImage)
	assert.False(t, snap.StreamActive)
}

func TestChangeSolutionPreviewFailureKeepsSolution(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)

	h.processor.EXPECT().FetchPreviewImage(gomock.Any(), testDevice).Return("", errBackend)

	require.ErrorIs(t, h.c.ChangeSolution(context.Background(), models.Heatmap), errBackend)
	assert.Equal(t, models.PeopleCount, h.c.Snapshot().SolutionType)
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())

	require.ErrorIs(t, h.c.ChangeSolution(context.Background(), "Bogus"), models.ErrUnknownSolutionType)
}

func TestSwitchModeResetsSession(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	h.start(t)

	h.processor.EXPECT().StopProcessing(gomock.Any(), testDevice).Return(models.StatusResponse{}, nil)

	require.NoError(t, h.c.SwitchMode(context.Background(), models.ModeHistory))

	snap := h.c.Snapshot()
	assert.Equal(t, models.ModeHistory, snap.Mode)
	assert.Equal(t, stage.Initial.String(), snap.Stage)
	assert.Empty(t, snap.DeviceID)
	assert.Empty(t, snap.ModelIDs)
	assert.Empty(t, snap.PreviewImage)
	assert.Equal(t, edgeapp.DefaultParams(), snap.Params)
	assert.Empty(t, snap.Schema)

	require.ErrorIs(t, h.c.StartSession(context.Background(), testDevice), ErrWrongMode)
}

func TestZoneEditing(t *testing.T) {
	h := newHarness(t)
	h.load(t, v1Config)
	ctx := context.Background()

	require.ErrorIs(t, h.c.BeginZone("region1"), ErrRegionsUnsupported)

	h.processor.EXPECT().FetchPreviewImage(gomock.Any(), testDevice).Return("preview", nil)
	require.NoError(t, h.c.ChangeSolution(ctx, models.PeopleCountInRegions))

	require.NoError(t, h.c.BeginZone("region1"))
	assert.Equal(t, stage.ZoneSelection, h.c.Stage())

	zone := models.Region{Left: 10, Top: 10, Right: 100, Bottom: 200}

	h.appConfig.EXPECT().PatchRegions(gomock.Any(), gomock.Any()).Return(errBackend)
	require.ErrorIs(t, h.c.AcceptZone(ctx, zone), errBackend)
	assert.Equal(t, stage.ZoneSelection, h.c.Stage())
	assert.Equal(t, models.DefaultRegions(), h.c.Regions())

	want := []models.Region{
		{ID: "region1", Left: 10, Top: 10, Right: 100, Bottom: 200},
		models.DefaultRegions()[1],
	}

	h.appConfig.EXPECT().PatchRegions(gomock.Any(), want).Return(nil)
	require.NoError(t, h.c.AcceptZone(ctx, zone))
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.Equal(t, want, h.c.Regions())

	require.NoError(t, h.c.BeginZone("region3"))
	require.ErrorIs(t, h.c.AcceptZone(ctx, models.Region{Left: 5, Right: 5, Bottom: 5}), ErrInvalidRegion)
	require.NoError(t, h.c.CancelZone())
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
}

func historyBatch() models.HistoryBatch {
	return models.HistoryBatch{Data: []models.HistoryRecord{
		{Timestamp: "20250101000000001", Inference: models.Inference{Kind: models.PeopleCountKind, PeopleCount: 1}},
		{Timestamp: "20250101000000002", Inference: models.Inference{Kind: models.PeopleCountKind, PeopleCount: 2}},
		{Timestamp: "20250101000000003", Inference: models.Inference{Kind: models.PeopleCountKind, PeopleCount: 3}},
	}}
}

func (h *harness) enterHistory(t *testing.T) {
	t.Helper()

	ctx := context.Background()

	h.history.EXPECT().ListDirectories(gomock.Any(), testDevice).Return([]string{"20250101"}, nil)

	require.NoError(t, h.c.SwitchMode(ctx, models.ModeHistory))
	require.NoError(t, h.c.SelectDevice(ctx, testDevice))
	require.Equal(t, stage.ParameterSelection, h.c.Stage())
	require.Equal(t, []string{"20250101"}, h.c.Directories())
}

func TestPlayback(t *testing.T) {
	h := newHarness(t)
	h.enterHistory(t)
	ctx := context.Background()

	_, err := h.c.StartPlayback(ctx, models.HistorySelector{})
	require.ErrorIs(t, err, ErrInvalidSelector)

	now := time.Now()
	_, err = h.c.StartPlayback(ctx, models.HistorySelector{From: now, To: now.Add(-time.Hour)})
	require.ErrorIs(t, err, ErrInvalidSelector)

	selector := models.HistorySelector{Directory: "20250101"}
	h.history.EXPECT().FetchHistory(gomock.Any(), testDevice, selector, models.PeopleCount).Return(historyBatch(), nil)

	status, err := h.c.StartPlayback(ctx, selector)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Cursor)
	assert.Equal(t, 3, status.Length)
	assert.False(t, status.AutoRun)
	assert.Equal(t, stage.InferenceRunning, h.c.Stage())

	assert.False(t, h.c.Tick())

	status, err = h.c.TogglePlayback()
	require.NoError(t, err)
	assert.True(t, status.AutoRun)

	assert.True(t, h.c.Tick())
	assert.True(t, h.c.Tick())
	assert.False(t, h.c.Tick())
	assert.Equal(t, 2, h.c.Snapshot().Playback.Cursor)

	status, err = h.c.Seek(-4)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Cursor)

	status, err = h.c.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, status.Cursor)

	snap := h.c.Snapshot()
	require.NotNil(t, snap.Record)
	assert.Equal(t, 2, snap.Record.Inference.PeopleCount)
	assert.Len(t, snap.PeopleCount, 3)

	require.NoError(t, h.c.StopPlayback())
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.Equal(t, -1, h.c.Snapshot().Playback.Cursor)
}

func TestPlaybackFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.enterHistory(t)

	selector := models.HistorySelector{Directory: "20250101"}
	h.history.EXPECT().FetchHistory(gomock.Any(), testDevice, selector, models.PeopleCount).
		Return(models.HistoryBatch{}, errBackend)

	_, err := h.c.StartPlayback(context.Background(), selector)
	require.ErrorIs(t, err, errBackend)
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
}

func TestHistoryChangeSolutionStopsPlayback(t *testing.T) {
	h := newHarness(t)
	h.enterHistory(t)

	selector := models.HistorySelector{Directory: "20250101"}
	h.history.EXPECT().FetchHistory(gomock.Any(), testDevice, selector, models.PeopleCount).Return(historyBatch(), nil)

	_, err := h.c.StartPlayback(context.Background(), selector)
	require.NoError(t, err)

	require.NoError(t, h.c.ChangeSolution(context.Background(), models.Heatmap))
	assert.Equal(t, stage.ParameterSelection, h.c.Stage())
	assert.Equal(t, models.Heatmap, h.c.Snapshot().SolutionType)
	assert.False(t, h.c.Snapshot().Playback.Available)
}

func TestStageListeners(t *testing.T) {
	h := newHarness(t)

	var got []string

	h.c.OnStageChange(func(e models.StageEventData) {
		got = append(got, e.PreviousStage+">"+e.CurrentStage)
	})

	h.load(t, v1Config)

	assert.Equal(t, []string{
		stage.Initial.String() + ">" + stage.ParameterLoading.String(),
		stage.ParameterLoading.String() + ">" + stage.ParameterSelection.String(),
	}, got)
}

type eventSink struct {
	mu     sync.Mutex
	stages []string
}

func (s *eventSink) publish(_ context.Context, e *models.StageEventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stages = append(s.stages, e.CurrentStage)

	return nil
}

func (s *eventSink) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.stages {
		if st == name {
			return true
		}
	}

	return false
}

func TestRunPumpsStreamAndPublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockEventPublisher(ctrl)
	sink := &eventSink{}
	publisher.EXPECT().PublishStageChange(gomock.Any(), gomock.Any()).DoAndReturn(sink.publish).AnyTimes()

	h := newHarness(t)
	h.c.deps.Publisher = publisher

	msgs := make(chan models.InboundMessage, 2)
	msgs <- models.InboundMessage{DeviceID: "other", Timestamp: "20250101000000001",
		Inference: models.Inference{Kind: models.PeopleCountKind, PeopleCount: 9}}
	msgs <- models.InboundMessage{DeviceID: testDevice, Timestamp: "20250101000000002",
		Inference: models.Inference{Kind: models.PeopleCountKind, PeopleCount: 4}}

	h.stream.EXPECT().Subscribe(gomock.Any()).
		DoAndReturn(func(context.Context) (<-chan models.InboundMessage, error) { return msgs, nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- h.c.Run(ctx) }()

	h.load(t, v1Config)
	h.start(t)

	assert.Eventually(t, func() bool {
		return len(h.c.Snapshot().PeopleCount) == 1
	}, time.Second, 10*time.Millisecond)

	snap := h.c.Snapshot()
	assert.Equal(t, []models.PeopleCountTelemetry{{Timestamp: "20250101000000002", PeopleCount: 4}}, snap.PeopleCount)
	assert.Equal(t, "20250101000000002", snap.Frame.Timestamp)

	assert.Eventually(t, func() bool {
		return sink.has(stage.InferenceRunning.String())
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
