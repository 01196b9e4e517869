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

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode      key.Binding
	Device    key.Binding
	Model     key.Binding
	Start     key.Binding
	Stop      key.Binding
	Solution  key.Binding
	Next      key.Binding
	Previous  key.Binding
	Toggle    key.Binding
	Threshold key.Binding
	Copy      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Device:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "device/dir")),
		Model:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load model")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Solution:  key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1/2/3", "solution")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Previous:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Threshold: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "threshold")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy config")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Start, k.Stop, k.Solution, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Device, k.Model, k.Solution},
		{k.Start, k.Stop, k.Threshold, k.Copy},
		{k.Next, k.Previous, k.Toggle, k.Quit},
	}
}
