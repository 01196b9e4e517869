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

package consoleclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/reconcile"
	"github.com/carverauto/edgeview/pkg/session"
)

var (
	_ reconcile.ConfigStore   = (*Client)(nil)
	_ session.Processor       = (*Client)(nil)
	_ session.HistorySource   = (*Client)(nil)
	_ session.Stream          = (*Client)(nil)
	_ session.DeviceDirectory = (*Client)(nil)
	_ session.AppConfigStore  = (*Client)(nil)
)

type recorded struct {
	method string
	uri    string
	apiKey string
	body   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) at(i int) recorded {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.reqs[i]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.reqs)
}

// backend replies with the canned response for "METHOD path" and records
// every request.
func backend(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*Client, *recorder) {
	t.Helper()

	reqs := &recorder{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		reqs.mu.Lock()
		reqs.reqs = append(reqs.reqs, recorded{
			method: r.Method,
			uri:    r.URL.RequestURI(),
			apiKey: r.Header.Get("X-API-Key"),
			body:   string(body),
		})
		reqs.mu.Unlock()

		if h, ok := routes[r.Method+" "+r.URL.Path]; ok {
			h(w)
			return
		}

		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second})
	require.NoError(t, err)

	return c, reqs
}

func reply(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestDefaultStreamURL(t *testing.T) {
	c, err := New(Config{BaseURL: "https://console.example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "wss://console.example.com/api/processing/ws", c.streamURL)

	c, err = New(Config{BaseURL: "http://localhost:8000"})
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8000/processing/ws", c.streamURL)
}

func TestFetchConfiguration(t *testing.T) {
	c, reqs := backend(t, map[string]func(http.ResponseWriter){
		"GET /configurations/dev-1": reply(http.StatusOK, `{"edge_app": {"common_settings": {}}}`),
		"GET /configurations/dev-2": reply(http.StatusOK, `[1, 2]`),
		"GET /configurations/dev-3": reply(http.StatusInternalServerError, `{"detail": "boom"}`),
	})
	ctx := context.Background()

	doc, err := c.FetchConfiguration(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, edgeapp.SchemaV2, doc.Schema())
	assert.Equal(t, "secret", reqs.at(0).apiKey)

	_, err = c.FetchConfiguration(ctx, "dev-2")
	require.ErrorIs(t, err, ErrParse)

	_, err = c.FetchConfiguration(ctx, "dev-3")
	require.ErrorIs(t, err, ErrTransport)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Code)
	assert.Contains(t, serr.Body, "boom")

	_, err = c.FetchConfiguration(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrTransport)
}

func TestPushConfiguration(t *testing.T) {
	c, reqs := backend(t, map[string]func(http.ResponseWriter){
		"PATCH /configurations/dev-1": reply(http.StatusOK, `{"status": "ok"}`),
		"PUT /configurations/dev-1":   reply(http.StatusOK, `{"status": "ok"}`),
	})
	ctx := context.Background()

	doc := edgeapp.DefaultV1("a.json")
	require.NoError(t, c.PatchConfiguration(ctx, "dev-1", doc))
	require.NoError(t, c.PutConfiguration(ctx, "dev-1", doc))

	require.Equal(t, 2, reqs.count())
	assert.Equal(t, http.MethodPatch, reqs.at(0).method)
	assert.Equal(t, http.MethodPut, reqs.at(1).method)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(reqs.at(1).body), &sent))
	assert.Equal(t, "a.json", sent["file_name"])
}

func TestProcessing(t *testing.T) {
	c, reqs := backend(t, map[string]func(http.ResponseWriter){
		"POST /processing/start_processing/dev-1": reply(http.StatusOK, `{"status": "started"}`),
		"POST /processing/stop_processing/dev-1":  reply(http.StatusOK, `{"status": "stopped"}`),
		"GET /processing/image/dev-1":             reply(http.StatusOK, `"aGVsbG8="`),
	})
	ctx := context.Background()

	resp, err := c.StartProcessing(ctx, "dev-1", false, models.PeopleCountInRegions)
	require.NoError(t, err)
	assert.Equal(t, "started", resp.Status)
	assert.Equal(t, "/processing/start_processing/dev-1?receive_image=false&solution_type=PeopleCountInRegions",
		reqs.at(0).uri)

	resp, err = c.StopProcessing(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "stopped", resp.Status)

	img, err := c.FetchPreviewImage(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", img)
}

func TestHistory(t *testing.T) {
	c, reqs := backend(t, map[string]func(http.ResponseWriter){
		"GET /insight/directories/dev-1": reply(http.StatusOK, `{"directories": ["20250101", "20250102"]}`),
		"GET /insight/images_and_inferences/dev-1/20250101": reply(http.StatusOK,
			`{"data": [{"image": "img", "timestamp": "20250101000000001", "inference": {"people_count": 3}}]}`),
		"GET /insight/inferences/dev-1": reply(http.StatusOK,
			`{"data": [{"timestamp": "20250101000000001", "inference": {"people_count_in_regions": {"region1": 2}}}]}`),
	})
	ctx := context.Background()

	dirs, err := c.ListDirectories(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101", "20250102"}, dirs)

	batch, err := c.FetchHistory(ctx, "dev-1", models.HistorySelector{Directory: "20250101"}, models.PeopleCount)
	require.NoError(t, err)
	require.Len(t, batch.Data, 1)
	assert.Equal(t, "img", batch.Data[0].Image)
	assert.Equal(t, 3, batch.Data[0].Inference.PeopleCount)
	assert.Equal(t, "/insight/images_and_inferences/dev-1/20250101?solution_type=PeopleCount", reqs.at(1).uri)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	batch, err = c.FetchHistory(ctx, "dev-1", models.HistorySelector{From: from, To: from.Add(time.Hour)},
		models.PeopleCountInRegions)
	require.NoError(t, err)
	require.Len(t, batch.Data, 1)
	assert.Equal(t, map[string]int{"region1": 2}, batch.Data[0].Inference.PeopleCountInRegions)
	assert.Contains(t, reqs.at(2).uri, "from_datetime=2025-01-01T00%3A00%3A00Z")
	assert.Contains(t, reqs.at(2).uri, "to_datetime=2025-01-01T01%3A00%3A00Z")
}

func TestDevicesAndAppConfig(t *testing.T) {
	c, reqs := backend(t, map[string]func(http.ResponseWriter){
		"GET /devices": reply(http.StatusOK,
			`{"devices": [{"device_id": "dev-1", "device_name": "cam", "connection_state": "Connected", "models": ["m1"]}]}`),
		"GET /devices/dev-1": reply(http.StatusOK,
			`{"device_id": "dev-1", "device_name": "cam", "connection_state": "Disconnected", "models": ["m1", "m2"]}`),
		"GET /app_config/":          reply(http.StatusOK, `{"people_count_in_regions_settings": {"regions": []}}`),
		"PATCH /app_config/regions": reply(http.StatusOK, `{"status": "ok"}`),
	})
	ctx := context.Background()

	devices, err := c.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.True(t, devices[0].Connected())

	device, err := c.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.False(t, device.Connected())
	assert.Equal(t, []string{"m1", "m2"}, device.Models)

	cfg, err := c.GetAppConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRegions(), cfg.PeopleCountInRegions.Regions)

	require.NoError(t, c.PatchRegions(ctx, models.DefaultRegions()[:1]))
	assert.JSONEq(t, `{"regions": [{"id": "region1", "left": 0, "top": 0, "right": 150, "bottom": 320}]}`,
		reqs.at(3).body)
}

func TestTransportFailure(t *testing.T) {
	c, err := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListDevices(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}
