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

package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
)

const (
	deviceID = "dev-1"
	modelID  = "abcdefghijkl"

	v1Config = `{"file_name": "p.json", "commands": [{"command_name": "StartUploadInferenceData",
		"parameters": {"Mode": 1, "UploadInterval": 2, "ModelId": "m1", "PPLParameter": {"threshold": 0.5}}}]}`

	v2Config = `{"edge_app": {
		"common_settings": {"process_state": 2, "pq_settings": {"frame_rate": {"num": 60, "denom": 1}},
			"port_settings": {"input_tensor": {"enabled": true}}},
		"custom_settings": {"ai_models": {"detection": {"ai_model_bundle_id": "ghijkl",
			"parameters": {"threshold": 0.3, "input_width": 320, "input_height": 320, "max_detections": 10}}},
			"metadata_settings": {"format": 0}}}}`
)

var v1Params = edgeapp.Params{
	ModelID:        "m1",
	Threshold:      0.5,
	UploadInterval: 2,
	SendImage:      true,
	InputWidth:     edgeapp.DefaultInputWidth,
	InputHeight:    edgeapp.DefaultInputHeight,
}

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func decode(t *testing.T, raw string) edgeapp.Document {
	t.Helper()

	doc, err := edgeapp.Decode([]byte(raw))
	require.NoError(t, err)

	return doc
}

func newEngine(t *testing.T) (*Engine, *MockConfigStore, *sleepRecorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := NewMockConfigStore(ctrl)
	sleeper := &sleepRecorder{}

	return NewEngine(store, logger.NewTestLogger(), WithSleeper(sleeper.sleep)), store, sleeper
}

func loadDoc(t *testing.T, e *Engine, store *MockConfigStore, raw string) edgeapp.Params {
	t.Helper()

	store.EXPECT().FetchConfiguration(gomock.Any(), deviceID).Return(decode(t, raw), nil)

	p, err := e.Load(context.Background(), deviceID, modelID)
	require.NoError(t, err)

	return p
}

func TestLoadSynthesizesDefaultOnNotFound(t *testing.T) {
	e, store, sleeper := newEngine(t)

	var created edgeapp.Document

	store.EXPECT().FetchConfiguration(gomock.Any(), deviceID).Return(nil, models.ErrNotFound)
	store.EXPECT().PutConfiguration(gomock.Any(), deviceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, doc edgeapp.Document) error {
			created = doc
			return nil
		})

	p, err := e.Load(context.Background(), deviceID, modelID)
	require.NoError(t, err)

	assert.Equal(t, edgeapp.DefaultParams(), p)
	require.NotNil(t, created)
	assert.Equal(t, edgeapp.SchemaV1, created.Schema())

	held, err := e.Document()
	require.NoError(t, err)
	assert.Same(t, created, held)
	assert.Empty(t, sleeper.calls)
	assert.Equal(t, deviceID, e.DeviceID())
}

func TestLoadPropagatesOtherFetchErrors(t *testing.T) {
	e, store, _ := newEngine(t)

	store.EXPECT().FetchConfiguration(gomock.Any(), deviceID).Return(nil, models.ErrParse)

	_, err := e.Load(context.Background(), deviceID, modelID)
	require.ErrorIs(t, err, models.ErrParse)

	_, err = e.Document()
	require.ErrorIs(t, err, ErrNoConfiguration)
}

func TestLoadFailsWhenDefaultCannotBeCreated(t *testing.T) {
	e, store, _ := newEngine(t)

	store.EXPECT().FetchConfiguration(gomock.Any(), deviceID).Return(nil, models.ErrNotFound)
	store.EXPECT().PutConfiguration(gomock.Any(), deviceID, gomock.Any()).Return(models.ErrTransport)

	_, err := e.Load(context.Background(), deviceID, modelID)
	require.ErrorIs(t, err, models.ErrTransport)
}

func TestLoadFillsIncompleteV2(t *testing.T) {
	e, store, sleeper := newEngine(t)

	store.EXPECT().FetchConfiguration(gomock.Any(), deviceID).
		Return(decode(t, `{"edge_app": {"common_settings": {"process_state": 2}}}`), nil)
	store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, doc edgeapp.Document) error {
			assert.Equal(t, "ghijkl", edgeapp.ModelIDOf(doc))
			return nil
		})

	p, err := e.Load(context.Background(), deviceID, modelID)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, p.Threshold, 1e-9)
	assert.Equal(t, []time.Duration{DefaultSettleDelay}, sleeper.calls)
}

func TestLoadCompleteV2DoesNotPush(t *testing.T) {
	e, store, sleeper := newEngine(t)

	p := loadDoc(t, e, store, v2Config)

	assert.InDelta(t, 2.0, p.UploadInterval, 1e-9)
	assert.True(t, p.SendImage)
	assert.Empty(t, sleeper.calls)
}

func TestReconcileV1WithoutDiffSkipsPush(t *testing.T) {
	e, store, sleeper := newEngine(t)
	loadDoc(t, e, store, v1Config)

	res := e.Reconcile(context.Background(), deviceID, v1Params)

	assert.Equal(t, Result{Schema: edgeapp.SchemaV1}, res)
	assert.Empty(t, sleeper.calls)
}

func TestReconcileV1PushesEachChangedField(t *testing.T) {
	changes := map[string]func(p *edgeapp.Params){
		"send image": func(p *edgeapp.Params) { p.SendImage = false },
		"interval":   func(p *edgeapp.Params) { p.UploadInterval = 5 },
		"model":      func(p *edgeapp.Params) { p.ModelID = "m2" },
		"threshold":  func(p *edgeapp.Params) { p.Threshold = 0.7 },
	}

	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			e, store, sleeper := newEngine(t)
			loadDoc(t, e, store, v1Config)

			p := v1Params
			change(&p)

			store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, doc edgeapp.Document) error {
					assert.False(t, edgeapp.Diff(doc, p))
					return nil
				})

			res := e.Reconcile(context.Background(), deviceID, p)
			assert.True(t, res.Pushed)
			assert.Equal(t, []time.Duration{DefaultSettleDelay}, sleeper.calls)

			// The pushed document is the new baseline.
			assert.False(t, e.Reconcile(context.Background(), deviceID, p).Pushed)
		})
	}
}

func TestReconcileV2AlwaysPushes(t *testing.T) {
	e, store, _ := newEngine(t)
	p := loadDoc(t, e, store, v2Config)

	store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).Return(nil).Times(1)

	res := e.Reconcile(context.Background(), deviceID, p)

	assert.Equal(t, Result{Pushed: true, Schema: edgeapp.SchemaV2}, res)
}

func TestReconcileIgnoresOtherDevice(t *testing.T) {
	e, store, _ := newEngine(t)
	loadDoc(t, e, store, v2Config)

	res := e.Reconcile(context.Background(), "dev-2", v1Params)

	assert.Equal(t, Result{}, res)
}

func TestReconcileWithoutConfiguration(t *testing.T) {
	e, _, _ := newEngine(t)

	assert.Equal(t, Result{}, e.Reconcile(context.Background(), deviceID, v1Params))
}

func TestReconcileSwallowsPushFailure(t *testing.T) {
	e, store, sleeper := newEngine(t)
	loadDoc(t, e, store, v1Config)

	_, err := e.ApplyRaw([]byte(v1Config), []string{"m1"})
	require.NoError(t, err)

	store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).Return(errors.New("connection refused"))

	res := e.Reconcile(context.Background(), deviceID, v1Params)

	assert.False(t, res.Pushed)
	assert.True(t, e.Forced(), "a failed push keeps the force flag")
	assert.Empty(t, sleeper.calls, "no settle wait after a failed push")

	store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).Return(nil)

	assert.True(t, e.Reconcile(context.Background(), deviceID, v1Params).Pushed)
	assert.False(t, e.Forced())
	assert.Len(t, sleeper.calls, 1)
}

func TestApplyRawForcesPush(t *testing.T) {
	e, store, _ := newEngine(t)
	loadDoc(t, e, store, v1Config)

	edited := `{"commands": [{"parameters": {"Mode": 1, "UploadInterval": 2, "ModelId": "m1", "PPLParameter": {"threshold": 0.9}}}]}`

	p, err := e.ApplyRaw([]byte(edited), []string{"m1"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, p.Threshold, 1e-9)
	assert.True(t, e.Forced())

	store.EXPECT().PatchConfiguration(gomock.Any(), deviceID, gomock.Any()).Return(nil).Times(1)

	assert.True(t, e.Reconcile(context.Background(), deviceID, p).Pushed)
	assert.False(t, e.Forced())
	assert.False(t, e.Reconcile(context.Background(), deviceID, p).Pushed)
}

func TestApplyRawErrors(t *testing.T) {
	e, store, _ := newEngine(t)

	_, err := e.ApplyRaw([]byte(v1Config), nil)
	require.ErrorIs(t, err, ErrNoConfiguration)

	loadDoc(t, e, store, v1Config)

	_, err = e.ApplyRaw([]byte(v2Config), []string{modelID})
	require.ErrorIs(t, err, edgeapp.ErrSchemaMismatch)
	assert.False(t, e.Forced())

	_, err = e.ApplyRaw([]byte(v1Config), []string{"other"})

	var verr *edgeapp.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Invalid model ID"}, verr.Problems)
	assert.False(t, e.Forced())
}

func TestPreviewDoesNotStore(t *testing.T) {
	e, store, _ := newEngine(t)
	loadDoc(t, e, store, v1Config)

	p := v1Params
	p.Threshold = 0.8

	preview, err := e.Preview(p)
	require.NoError(t, err)
	assert.False(t, edgeapp.Diff(preview, p))

	held, err := e.Document()
	require.NoError(t, err)
	assert.True(t, edgeapp.Diff(held, p))
}

func TestReset(t *testing.T) {
	e, store, _ := newEngine(t)
	loadDoc(t, e, store, v1Config)

	e.Reset()

	assert.Empty(t, e.DeviceID())
	_, err := e.Document()
	require.ErrorIs(t, err, ErrNoConfiguration)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), 0))
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
