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

package models

const connectionStateConnected = "Connected"

// Device is a console device entry.
type Device struct {
	DeviceID        string   `json:"device_id"`
	DeviceName      string   `json:"device_name"`
	ConnectionState string   `json:"connection_state"`
	Models          []string `json:"models,omitempty"`
}

func (d Device) Connected() bool {
	return d.ConnectionState == connectionStateConnected
}

type DeviceList struct {
	Devices []Device `json:"devices"`
}

type ImageDirectories struct {
	Directories []string `json:"directories"`
}
