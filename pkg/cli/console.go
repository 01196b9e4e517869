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

// Package cli renders the interactive terminal console over a session
// controller.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/carverauto/edgeview/pkg/edgeapp"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/models"
	"github.com/carverauto/edgeview/pkg/playback"
	"github.com/carverauto/edgeview/pkg/session"
)

const refreshInterval = 250 * time.Millisecond

var (
	errNoDevices     = errors.New("backend reports no devices")
	errNoModels      = errors.New("device has no models")
	errNoDirectories = errors.New("no image directories for device")
	errBadThreshold  = errors.New("threshold must be a number")
)

// Console is the controller surface the terminal UI drives.
type Console interface {
	Snapshot() session.Snapshot
	Devices(ctx context.Context) ([]models.Device, error)

	SwitchMode(ctx context.Context, mode models.Mode) error
	SelectDevice(ctx context.Context, deviceID string) error
	SelectModel(ctx context.Context, modelID string) error
	ChangeSolution(ctx context.Context, solution models.SolutionType) error
	UpdateParams(u session.ParamsUpdate) (edgeapp.Params, error)

	StartSession(ctx context.Context, deviceID string) error
	StopSession(ctx context.Context, deviceID string) error
	RawConfig() (edgeapp.Document, error)

	StartPlayback(ctx context.Context, selector models.HistorySelector) (playback.Status, error)
	StopPlayback() error
	Next() (playback.Status, error)
	Previous() (playback.Status, error)
	TogglePlayback() (playback.Status, error)
}

type tickMsg time.Time

// actionMsg reports the outcome of a controller call run off the UI loop.
type actionMsg struct {
	label string
	err   error
}

type model struct {
	ctx     context.Context
	console Console
	logger  logger.Logger

	snap      session.Snapshot
	dirIndex  int
	busy      string
	status    string
	err       error
	editing   bool
	threshold textinput.Model

	keys   keyMap
	help   help.Model
	styles styles
	copy   func(string) error
}

func newModel(ctx context.Context, console Console, log logger.Logger) *model {
	ti := textinput.New()
	ti.Placeholder = "0.5"
	ti.CharLimit = 8
	ti.Prompt = "threshold> "

	return &model{
		ctx:       ctx,
		console:   console,
		logger:    log,
		snap:      console.Snapshot(),
		threshold: ti,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    newStyles(),
		copy:      clipboard.WriteAll,
	}
}

// Run shows the console until the user quits or ctx ends.
func Run(ctx context.Context, console Console, log logger.Logger) error {
	p := tea.NewProgram(newModel(ctx, console, log), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

// IsInputFromTerminal determines if input is coming from a terminal or being piped/redirected.
func IsInputFromTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (*model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snap = m.console.Snapshot()
		return m, tick()
	case actionMsg:
		m.busy = ""
		m.snap = m.console.Snapshot()

		if msg.err != nil {
			m.err = fmt.Errorf("%s: %w", msg.label, msg.err)
			m.status = ""
			m.logger.Warn().Err(msg.err).Str("action", msg.label).Msg("Console action failed")

			return m, nil
		}

		m.err = nil
		m.status = msg.label

		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateThreshold(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.busy != "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Mode):
		return m.switchMode()
	case key.Matches(msg, m.keys.Device):
		return m.nextDevice()
	case key.Matches(msg, m.keys.Model):
		return m.nextModel()
	case key.Matches(msg, m.keys.Start):
		return m.start()
	case key.Matches(msg, m.keys.Stop):
		return m.stop()
	case key.Matches(msg, m.keys.Solution):
		return m.changeSolution(msg.String())
	case key.Matches(msg, m.keys.Next):
		return m.navigate("next", m.console.Next)
	case key.Matches(msg, m.keys.Previous):
		return m.navigate("previous", m.console.Previous)
	case key.Matches(msg, m.keys.Toggle):
		return m.navigate("toggle", m.console.TogglePlayback)
	case key.Matches(msg, m.keys.Threshold):
		return m.beginThreshold()
	case key.Matches(msg, m.keys.Copy):
		return m.copyConfig()
	}

	return m, nil
}

// run executes fn off the UI loop and reports its outcome as an actionMsg.
func (m *model) run(label string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = label
	ctx := m.ctx

	return m, func() tea.Msg {
		return actionMsg{label: label, err: fn(ctx)}
	}
}

func (m *model) switchMode() (tea.Model, tea.Cmd) {
	next := models.ModeHistory
	if m.snap.Mode == models.ModeHistory {
		next = models.ModeRealtime
	}

	m.dirIndex = 0

	return m.run("mode "+string(next), func(ctx context.Context) error {
		return m.console.SwitchMode(ctx, next)
	})
}

func (m *model) nextDevice() (tea.Model, tea.Cmd) {
	if m.snap.Mode == models.ModeHistory && len(m.snap.Directories) > 0 {
		m.dirIndex = (m.dirIndex + 1) % len(m.snap.Directories)
		m.status = "directory " + m.snap.Directories[m.dirIndex]

		return m, nil
	}

	current := m.snap.DeviceID

	return m.run("select device", func(ctx context.Context) error {
		devices, err := m.console.Devices(ctx)
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			return errNoDevices
		}

		_, idx, _ := lo.FindIndexOf(devices, func(d models.Device) bool { return d.DeviceID == current })

		return m.console.SelectDevice(ctx, devices[(idx+1)%len(devices)].DeviceID)
	})
}

func (m *model) nextModel() (tea.Model, tea.Cmd) {
	ids := m.snap.ModelIDs
	if len(ids) == 0 {
		m.err = errNoModels
		return m, nil
	}

	idx := lo.IndexOf(ids, m.snap.Params.ModelID)
	modelID := ids[(idx+1)%len(ids)]

	return m.run("load model "+modelID, func(ctx context.Context) error {
		return m.console.SelectModel(ctx, modelID)
	})
}

func (m *model) start() (tea.Model, tea.Cmd) {
	if m.snap.Mode == models.ModeHistory {
		if len(m.snap.Directories) == 0 {
			m.err = errNoDirectories
			return m, nil
		}

		dir := m.snap.Directories[m.dirIndex%len(m.snap.Directories)]

		return m.run("playback "+dir, func(ctx context.Context) error {
			_, err := m.console.StartPlayback(ctx, models.HistorySelector{Directory: dir})
			return err
		})
	}

	deviceID := m.snap.DeviceID

	return m.run("start", func(ctx context.Context) error {
		return m.console.StartSession(ctx, deviceID)
	})
}

func (m *model) stop() (tea.Model, tea.Cmd) {
	if m.snap.Mode == models.ModeHistory {
		return m.run("stop playback", func(context.Context) error {
			return m.console.StopPlayback()
		})
	}

	deviceID := m.snap.DeviceID

	return m.run("stop", func(ctx context.Context) error {
		return m.console.StopSession(ctx, deviceID)
	})
}

func (m *model) changeSolution(k string) (tea.Model, tea.Cmd) {
	solution := map[string]models.SolutionType{
		"1": models.PeopleCount,
		"2": models.PeopleCountInRegions,
		"3": models.Heatmap,
	}[k]

	return m.run("solution "+string(solution), func(ctx context.Context) error {
		return m.console.ChangeSolution(ctx, solution)
	})
}

func (m *model) navigate(label string, fn func() (playback.Status, error)) (tea.Model, tea.Cmd) {
	if m.snap.Mode != models.ModeHistory {
		return m, nil
	}

	_, err := fn()
	m.err = err
	m.snap = m.console.Snapshot()

	if err == nil {
		m.status = label
	}

	return m, nil
}

func (m *model) beginThreshold() (tea.Model, tea.Cmd) {
	m.editing = true
	m.threshold.SetValue(strconv.FormatFloat(m.snap.Params.Threshold, 'f', -1, 64))
	m.threshold.CursorEnd()

	return m, m.threshold.Focus()
}

func (m *model) updateThreshold(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // remaining keys go to the text input
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.threshold.Blur()

		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.threshold.Blur()

		v, err := strconv.ParseFloat(strings.TrimSpace(m.threshold.Value()), 64)
		if err != nil {
			m.err = errBadThreshold
			return m, nil
		}

		params, err := m.console.UpdateParams(session.ParamsUpdate{Threshold: &v})
		m.err = err

		if err == nil {
			m.status = fmt.Sprintf("threshold %.2f", params.Threshold)
		}

		m.snap = m.console.Snapshot()

		return m, nil
	}

	var cmd tea.Cmd
	m.threshold, cmd = m.threshold.Update(msg)

	return m, cmd
}

func (m *model) copyConfig() (tea.Model, tea.Cmd) {
	doc, err := m.console.RawConfig()
	if err != nil {
		m.err = err
		return m, nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		m.err = err
		return m, nil
	}

	if err := m.copy(string(data)); err != nil {
		m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
		return m, nil
	}

	m.err = nil
	m.status = "configuration copied to clipboard"

	return m, nil
}
