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

// TLSConfig points at the PEM files of an mTLS client identity.
type TLSConfig struct {
	CAFile     string `json:"ca_file" yaml:"ca_file"`
	CertFile   string `json:"cert_file" yaml:"cert_file"`
	KeyFile    string `json:"key_file" yaml:"key_file"`
	ServerName string `json:"server_name,omitempty" yaml:"server_name,omitempty"`
}

// NATSConfig configures the session event publisher. An empty URL disables it.
type NATSConfig struct {
	URL     string     `json:"url" yaml:"url"`
	Stream  string     `json:"stream" yaml:"stream"`
	Domain  string     `json:"domain,omitempty" yaml:"domain,omitempty"`
	Subject string     `json:"subject" yaml:"subject"`
	TLS     *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}
