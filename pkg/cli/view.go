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

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/carverauto/edgeview/pkg/models"
)

func (m *model) View() string {
	var content strings.Builder

	content.WriteString(m.styles.title.Render("EdgeView Console"))
	content.WriteString("  ")
	content.WriteString(m.styles.stage.Render(m.snap.Stage))
	content.WriteString("\n\n")

	content.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.panel.Render(m.renderSession()),
		" ",
		m.styles.panel.Render(m.renderParams()),
	))
	content.WriteString("\n")

	if m.snap.Mode == models.ModeHistory {
		content.WriteString(m.styles.panel.Render(m.renderPlayback()))
	} else {
		content.WriteString(m.styles.panel.Render(m.renderTelemetry()))
	}

	content.WriteString("\n")

	if m.editing {
		content.WriteString(m.threshold.View() + "\n")
	}

	switch {
	case m.busy != "":
		content.WriteString(m.styles.hint.Render(m.busy + "..."))
	case m.err != nil:
		content.WriteString(m.styles.error.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		content.WriteString(m.styles.success.Render(m.status))
	}

	content.WriteString("\n\n")
	content.WriteString(m.help.View(m.keys))

	return m.styles.app.Render(content.String())
}

func (m *model) row(label string, value interface{}) string {
	return m.styles.label.Render(fmt.Sprintf("%-12s", label)) + m.styles.value.Render(fmt.Sprint(value))
}

func (m *model) renderSession() string {
	s := m.snap

	rows := []string{
		m.row("mode", s.Mode),
		m.row("device", lo.Ternary(s.DeviceID == "", "-", s.DeviceID)),
		m.row("solution", s.SolutionType),
		m.row("models", strings.Join(s.ModelIDs, ", ")),
	}

	if s.Mode == models.ModeHistory && len(s.Directories) > 0 {
		rows = append(rows, m.row("directory", s.Directories[m.dirIndex%len(s.Directories)]))
	}

	if s.StreamActive {
		rows = append(rows, m.styles.live.Render("● streaming"))
	}

	return strings.Join(rows, "\n")
}

func (m *model) renderParams() string {
	p := m.snap.Params

	return strings.Join([]string{
		m.row("model id", lo.Ternary(p.ModelID == "", "-", p.ModelID)),
		m.row("threshold", fmt.Sprintf("%.2f", p.Threshold)),
		m.row("interval", fmt.Sprintf("%.1fs", p.UploadInterval)),
		m.row("send image", p.SendImage),
		m.row("input", fmt.Sprintf("%dx%d", p.InputWidth, p.InputHeight)),
		m.row("schema", lo.Ternary(m.snap.Schema == "", "-", string(m.snap.Schema))),
		m.row("force push", m.snap.Forced),
	}, "\n")
}

func (m *model) renderTelemetry() string {
	s := m.snap
	rows := []string{m.row("frame", lo.Ternary(s.Frame.Timestamp == "", "-", s.Frame.Timestamp))}

	if inf := s.Frame.Inference; inf != nil {
		rows = append(rows,
			m.row("detections", len(inf.Perception.ObjectDetectionList)),
			m.row("kind", inf.Kind),
		)
	}

	switch s.SolutionType {
	case models.PeopleCount:
		if n := len(s.PeopleCount); n > 0 {
			rows = append(rows, m.row("people", s.PeopleCount[n-1].PeopleCount), m.row("samples", n))
		}
	case models.PeopleCountInRegions:
		if n := len(s.RegionCount); n > 0 {
			rows = append(rows, m.row("regions", formatRegions(s.RegionCount[n-1].PeopleCountInRegions)), m.row("samples", n))
		}
	}

	return strings.Join(rows, "\n")
}

func (m *model) renderPlayback() string {
	st := m.snap.Playback
	if !st.Available {
		return m.styles.hint.Render("no history loaded: press s to play the selected directory")
	}

	rows := []string{
		m.row("record", fmt.Sprintf("%d/%d", st.Cursor+1, st.Length)),
		m.row("auto run", st.AutoRun),
	}

	if rec := m.snap.Record; rec != nil {
		rows = append(rows,
			m.row("timestamp", rec.Timestamp),
			m.row("detections", len(rec.Inference.Perception.ObjectDetectionList)),
		)

		if rec.Inference.Kind == models.PeopleCountKind {
			rows = append(rows, m.row("people", rec.Inference.PeopleCount))
		}

		if len(rec.Inference.PeopleCountInRegions) > 0 {
			rows = append(rows, m.row("regions", formatRegions(rec.Inference.PeopleCountInRegions)))
		}
	}

	return strings.Join(rows, "\n")
}

func formatRegions(counts map[string]int) string {
	keys := lo.Keys(counts)
	sort.Strings(keys)

	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s=%d", k, counts[k])
	}), " ")
}
