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

	"github.com/carverauto/edgeview/pkg/edgeapp"
)

//go:generate mockgen -destination=mock_reconcile.go -package=reconcile github.com/carverauto/edgeview/pkg/reconcile ConfigStore

// ConfigStore reads and writes a device's remote configuration.
// FetchConfiguration fails with models.ErrNotFound when the device has none.
type ConfigStore interface {
	FetchConfiguration(ctx context.Context, deviceID string) (edgeapp.Document, error)
	PatchConfiguration(ctx context.Context, deviceID string, doc edgeapp.Document) error
	PutConfiguration(ctx context.Context, deviceID string, doc edgeapp.Document) error
}
