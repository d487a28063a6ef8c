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
	"fmt"
	"strings"
)

var (
	DefaultPrefix      = "ls"
	DefaultStorageType = StorageTypeLocal
)

// PrefixSeparator is appended to a non-empty prefix to separate it from keys.
const PrefixSeparator = "."

// StorageType selects which backing store of a Host should be used.
type StorageType string

const (
	StorageTypeLocal   StorageType = "localStorage"
	StorageTypeSession StorageType = "sessionStorage"
)

func (t StorageType) IsValid() bool {
	return t == StorageTypeLocal || t == StorageTypeSession
}

// NotifyOptions toggles change event emission.
type NotifyOptions struct {
	// Emit an event on every successful set.
	// Optional
	SetItem bool `json:"setItem,omitempty"`

	// Emit an event on every successful remove.
	// Optional
	RemoveItem bool `json:"removeItem,omitempty"`
}

// StorageConfig defines how a scoped storage binds to its backing store.
type StorageConfig struct {
	// Used to namespace all keys. A separator is appended if missing.
	// An explicitly empty prefix disables namespacing.
	// Defaults to DefaultPrefix
	// Optional
	Prefix *string `json:"prefix,omitempty"`

	// Used to select the backing store.
	// Defaults to DefaultStorageType
	// Optional
	StorageType StorageType `json:"storageType,omitempty"`

	// Used to enable change notifications.
	// Optional
	NotifyOptions *NotifyOptions `json:"notifyOptions,omitempty"`
}

// GetPrefix returns the resolved prefix, e.g. "app" resolves to "app.".
func (cfg *StorageConfig) GetPrefix() string {
	prefix := DefaultPrefix
	if cfg.Prefix != nil {
		prefix = *cfg.Prefix
	}
	if prefix != "" && !strings.HasSuffix(prefix, PrefixSeparator) {
		prefix += PrefixSeparator
	}
	return prefix
}

func (cfg *StorageConfig) GetStorageType() StorageType {
	if cfg.StorageType == "" {
		return DefaultStorageType
	}
	return cfg.StorageType
}

func (cfg *StorageConfig) GetNotifyOptions() NotifyOptions {
	if cfg.NotifyOptions == nil {
		return NotifyOptions{}
	}
	return *cfg.NotifyOptions
}

// Validate checks if the provided config can be used.
func (cfg *StorageConfig) Validate() error {
	if storageType := cfg.GetStorageType(); !storageType.IsValid() {
		return fmt.Errorf("invalid .storageType %q, expected %q or %q",
			storageType, StorageTypeLocal, StorageTypeSession)
	}
	return nil
}

// ChangeEvent is emitted when an item is set or removed.
type ChangeEvent struct {
	// Key is the logical (unprefixed) key the change applies to.
	Key string `json:"key"`

	// Path is the nested path inside Key that was written, if any.
	Path []string `json:"path,omitempty"`

	// Value is the whole value stored under Key. Only set for set events.
	Value any `json:"value,omitempty"`

	StorageType StorageType `json:"storageType"`
}
