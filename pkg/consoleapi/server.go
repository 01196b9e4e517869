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

// Package consoleapi exposes the console session controller as a REST API.
package consoleapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	srHttp "github.com/carverauto/edgeview/pkg/http"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/session"
	"github.com/carverauto/edgeview/pkg/stage"
	"github.com/carverauto/edgeview/pkg/version"
)

type healthResponse struct {
	Status string `json:"status"`
	version.Info
}

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	maxRawConfigSize = 1 << 20
)

var errBadRequest = errors.New("bad request")

// Server serves the console API.
type Server struct {
	console    Console
	router     *mux.Router
	corsConfig models.CORSConfig
	apiKey     string
	logger     logger.Logger
}

// WithCORS sets the allowed origins.
func WithCORS(cfg models.CORSConfig) func(*Server) {
	return func(s *Server) {
		s.corsConfig = cfg
	}
}

// WithAPIKey requires the key on every /api request.
func WithAPIKey(key string) func(*Server) {
	return func(s *Server) {
		s.apiKey = key
	}
}

func NewServer(console Console, log logger.Logger, options ...func(*Server)) *Server {
	s := &Server{
		console: console,
		router:  mux.NewRouter(),
		logger:  log,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return srHttp.CommonMiddleware(next, s.corsConfig, s.logger)
	})

	s.router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: version.Get()})
	}).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(srHttp.APIKeyMiddleware(s.apiKey, s.logger))

	api.HandleFunc("/session", s.getSession).Methods(http.MethodGet)
	api.HandleFunc("/devices", s.getDevices).Methods(http.MethodGet)
	api.HandleFunc("/mode", s.postMode).Methods(http.MethodPost)
	api.HandleFunc("/device", s.postDevice).Methods(http.MethodPost)
	api.HandleFunc("/model", s.postModel).Methods(http.MethodPost)
	api.HandleFunc("/solution", s.postSolution).Methods(http.MethodPost)
	api.HandleFunc("/params", s.patchParams).Methods(http.MethodPatch)
	api.HandleFunc("/session/start", s.startSession).Methods(http.MethodPost)
	api.HandleFunc("/session/stop", s.stopSession).Methods(http.MethodPost)

	api.HandleFunc("/zones/begin", s.beginZone).Methods(http.MethodPost)
	api.HandleFunc("/zones/begin", s.cancelZone).Methods(http.MethodDelete)
	api.HandleFunc("/zones", s.acceptZone).Methods(http.MethodPost)

	api.HandleFunc("/config/raw", s.getRawConfig).Methods(http.MethodGet)
	api.HandleFunc("/config/raw", s.putRawConfig).Methods(http.MethodPut)
	api.HandleFunc("/config/raw/edit", s.beginRawEdit).Methods(http.MethodPost)
	api.HandleFunc("/config/raw/edit", s.cancelRawEdit).Methods(http.MethodDelete)

	api.HandleFunc("/directories", s.refreshDirectories).Methods(http.MethodPost)
	api.HandleFunc("/playback/start", s.startPlayback).Methods(http.MethodPost)
	api.HandleFunc("/playback/stop", s.stopPlayback).Methods(http.MethodPost)
	api.HandleFunc("/playback/seek", s.seekPlayback).Methods(http.MethodPost)
	api.HandleFunc("/playback/{action:next|previous|toggle}", s.stepPlayback).Methods(http.MethodPost)

	api.HandleFunc("/telemetry/{solution}", s.getTelemetry).Methods(http.MethodGet)
}

// Start serves on addr until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("Console API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown console api: %w", err)
		}

		return nil
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("Request failed")
	}

	s.writeJSON(w, status, models.ErrorResponse{Message: err.Error(), Status: status})
}

// statusFor maps controller errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *edgeapp.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, edgeapp.ErrSchemaMismatch),
		errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrDeviceMismatch),
		errors.Is(err, stage.ErrIllegalTransition),
		errors.Is(err, stage.ErrStaleStage):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, edgeapp.ErrInvalidDocument),
		errors.Is(err, session.ErrNoDevice),
		errors.Is(err, session.ErrUnknownModel),
		errors.Is(err, session.ErrInvalidSelector),
		errors.Is(err, session.ErrInvalidRegion),
		errors.Is(err, session.ErrRegionsUnsupported),
		errors.Is(err, models.ErrUnknownSolutionType):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrTransport), errors.Is(err, models.ErrParse):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}
