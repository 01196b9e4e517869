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

package consoleapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/session"
)

type modeRequest struct {
	Mode models.Mode `json:"mode"`
}

type deviceRequest struct {
	DeviceID string `json:"device_id"`
}

type modelRequest struct {
	ModelID string `json:"model_id"`
}

type solutionRequest struct {
	SolutionType models.SolutionType `json:"solution_type"`
}

type zoneRequest struct {
	RegionID string `json:"region_id"`
}

type seekRequest struct {
	Index int `json:"index"`
}

type playbackRequest struct {
	Directory string    `json:"directory,omitempty"`
	From      time.Time `json:"from,omitempty"`
	To        time.Time `json:"to,omitempty"`
}

type directoriesResponse struct {
	Directories []string `json:"directories"`
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.console.Snapshot())
}

func (s *Server) getDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.console.Devices(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, models.DeviceList{Devices: devices})
}

// respond writes the session snapshot after a successful state change.
func (s *Server) respond(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.console.Snapshot())
}

func (s *Server) postMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.SwitchMode(r.Context(), req.Mode))
}

func (s *Server) postDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.SelectDevice(r.Context(), req.DeviceID))
}

func (s *Server) postModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.SelectModel(r.Context(), req.ModelID))
}

func (s *Server) postSolution(w http.ResponseWriter, r *http.Request) {
	var req solutionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.ChangeSolution(r.Context(), req.SolutionType))
}

func (s *Server) patchParams(w http.ResponseWriter, r *http.Request) {
	var req session.ParamsUpdate
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	params, err := s.console.UpdateParams(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, params)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.console.StartSession(r.Context(), s.console.DeviceID()))
}

func (s *Server) stopSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.console.StopSession(r.Context(), s.console.DeviceID()))
}

func (s *Server) beginZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.BeginZone(req.RegionID))
}

func (s *Server) cancelZone(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.console.CancelZone())
}

func (s *Server) acceptZone(w http.ResponseWriter, r *http.Request) {
	var region models.Region
	if err := decodeBody(r, &region); err != nil {
		s.writeError(w, err)
		return
	}

	s.respond(w, s.console.AcceptZone(r.Context(), region))
}

func (s *Server) getRawConfig(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.console.RawConfig()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) putRawConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRawConfigSize))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	params, err := s.console.ApplyRawConfig(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, params)
}

func (s *Server) beginRawEdit(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.console.BeginRawEdit())
}

func (s *Server) cancelRawEdit(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.console.CancelRawEdit())
}

func (s *Server) refreshDirectories(w http.ResponseWriter, r *http.Request) {
	dirs, err := s.console.RefreshDirectories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, directoriesResponse{Directories: dirs})
}

func (s *Server) startPlayback(w http.ResponseWriter, r *http.Request) {
	var req playbackRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	status, err := s.console.StartPlayback(r.Context(), models.HistorySelector(req))
	s.writePlayback(w, status, err)
}

func (s *Server) stopPlayback(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.console.StopPlayback())
}

func (s *Server) seekPlayback(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	status, err := s.console.Seek(req.Index)
	s.writePlayback(w, status, err)
}

func (s *Server) stepPlayback(w http.ResponseWriter, r *http.Request) {
	var (
		status playback.Status
		err    error
	)

	switch mux.Vars(r)["action"] {
	case "next":
		status, err = s.console.Next()
	case "previous":
		status, err = s.console.Previous()
	case "toggle":
		status, err = s.console.TogglePlayback()
	}

	s.writePlayback(w, status, err)
}

func (s *Server) writePlayback(w http.ResponseWriter, status playback.Status, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) getTelemetry(w http.ResponseWriter, r *http.Request) {
	solution, err := models.ParseSolutionType(mux.Vars(r)["solution"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := s.console.Snapshot()

	switch solution {
	case models.PeopleCount:
		s.writeJSON(w, http.StatusOK, snap.PeopleCount)
	case models.PeopleCountInRegions:
		s.writeJSON(w, http.StatusOK, snap.RegionCount)
	case models.Heatmap:
		s.writeJSON(w, http.StatusOK, snap.Frame)
	}
}
