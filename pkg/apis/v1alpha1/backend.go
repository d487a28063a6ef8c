// Copyright © 2024 Bank-Vaults Maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1alpha1

import (
	"context"
	"errors"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// BackendProvider defines methods to manage backing stores.
type BackendProvider interface {
	// NewBackend creates a new Backend for provided spec.
	NewBackend(ctx context.Context, spec BackendSpec) (Backend, error)

	// Validate checks if the provided spec is valid.
	Validate(spec BackendSpec) error
}

// Backend is a synchronous string key-value store, modelled after the web
// storage API. Must support concurrent calls.
type Backend interface {
	// GetItem returns the value stored for key. Reports false if key is absent.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value for key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Keys returns a snapshot of all stored keys in the store's native order.
	Keys(ctx context.Context) ([]string, error)
}

// Host exposes the backing stores available to the process.
type Host interface {
	// Storage returns the backing store for the given kind, or nil if the
	// kind is not available.
	Storage(kind StorageType) Backend
}
