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

// Package storage provides a namespaced JSON view over a web-storage-like
// backing store with change notifications.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

const notSupportedMessage = "LOCAL_STORAGE_NOT_SUPPORTED"

// ErrStorageNotSupported is reported on the warnings channel whenever an
// operation is attempted on an unavailable backing store.
var ErrStorageNotSupported = errors.New(notSupportedMessage)

// Service is a scoped view over a single backing store. All keys are
// namespaced with the configured prefix and all values are JSON encoded.
//
// No method returns an error. Failures are reported on the Errors and
// Warnings channels and the method returns a safe default instead.
type Service struct {
	backend     v1alpha1.Backend
	prefix      string
	storageType v1alpha1.StorageType
	notify      v1alpha1.NotifyOptions
	supported   bool
	log         *logrus.Entry

	errors      *Channel[string]
	warnings    *Channel[string]
	setItems    *Channel[v1alpha1.ChangeEvent]
	removeItems *Channel[v1alpha1.ChangeEvent]
}

// New binds a Service to the backing store selected by config from host.
// An absent or non-functional store does not fail construction; the Service
// is marked unsupported instead, see Supported.
func New(ctx context.Context, host v1alpha1.Host, config v1alpha1.StorageConfig, opts ...Option) *Service {
	option := newOptions(opts...)

	s := &Service{
		prefix:      config.GetPrefix(),
		storageType: config.GetStorageType(),
		notify:      config.GetNotifyOptions(),
		errors:      NewChannel[string](),
		warnings:    NewChannel[string](),
		setItems:    NewChannel[v1alpha1.ChangeEvent](),
		removeItems: NewChannel[v1alpha1.ChangeEvent](),
	}

	s.log = option.Logger
	if s.log == nil {
		s.log = logrus.WithField("prefix", s.prefix)
	}
	s.log = s.log.WithField("storage", s.storageType)

	if err := config.Validate(); err != nil {
		s.log.WithError(err).Error("Invalid storage config")
		return s
	}

	if host != nil {
		s.backend = host.Storage(s.storageType)
	}
	s.supported = s.checkSupport(ctx)

	return s
}

// Errors returns the channel carrying write/delete failure messages.
func (s *Service) Errors() *Channel[string] { return s.errors }

// Warnings returns the channel carrying unsupported-storage warnings.
func (s *Service) Warnings() *Channel[string] { return s.warnings }

// SetItems returns the channel of set events. Only used if enabled by
// NotifyOptions.SetItem.
func (s *Service) SetItems() *Channel[v1alpha1.ChangeEvent] { return s.setItems }

// RemoveItems returns the channel of remove events. Only used if enabled by
// NotifyOptions.RemoveItem.
func (s *Service) RemoveItems() *Channel[v1alpha1.ChangeEvent] { return s.removeItems }

func (s *Service) StorageType() v1alpha1.StorageType { return s.storageType }

func (s *Service) Prefix() string { return s.prefix }

// Supported reports whether the backing store passed the capability probe.
func (s *Service) Supported() bool { return s.supported }

// Get returns the decoded value stored for key, optionally resolved along
// path. Returns nil if the item is missing, cannot be decoded or the path
// does not resolve.
func (s *Service) Get(ctx context.Context, key string, path ...string) any {
	if !s.supported {
		s.warnNotSupported("get")
		return nil
	}

	value, err := s.load(ctx, key)
	if err != nil {
		s.reportError("get", key, err)
		return nil
	}

	return lookup(value, path)
}

// GetInto decodes the value resolved by Get into out, which must be a
// pointer. Reports false if there was nothing to decode or it did not fit.
func (s *Service) GetInto(ctx context.Context, out any, key string, path ...string) bool {
	value := s.Get(ctx, key, path...)
	if value == nil {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// Set stores value under key. With a path, the current value under key is
// loaded (or started as an empty object), value is placed at path, and the
// whole structure is written back under key.
func (s *Service) Set(ctx context.Context, value any, key string, path ...string) bool {
	if !s.supported {
		s.warnNotSupported("set")
		return false
	}

	if len(path) > 0 {
		root, err := s.load(ctx, key)
		if err != nil {
			s.reportError("set", key, err)
			return false
		}
		if isFalsy(root) {
			root = map[string]any{}
		}

		value, err = assign(root, path, value)
		if err != nil {
			s.reportError("set", key, err)
			return false
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.reportError("set", key, err)
		return false
	}

	if err := s.backend.SetItem(ctx, s.deriveKey(key), string(data)); err != nil {
		s.reportError("set", key, err)
		return false
	}

	if s.notify.SetItem {
		s.setItems.Emit(v1alpha1.ChangeEvent{
			Key:         key,
			Path:        path,
			Value:       value,
			StorageType: s.storageType,
		})
	}

	return true
}

// Remove deletes all given keys. Returns false if any removal failed; a
// failure does not stop the remaining keys from being removed.
func (s *Service) Remove(ctx context.Context, keys ...string) bool {
	if !s.supported {
		s.warnNotSupported("remove")
		return false
	}

	result := true
	for _, key := range keys {
		if err := s.backend.RemoveItem(ctx, s.deriveKey(key)); err != nil {
			s.reportError("remove", key, err)
			result = false
			continue
		}

		if s.notify.RemoveItem {
			s.removeItems.Emit(v1alpha1.ChangeEvent{
				Key:         key,
				StorageType: s.storageType,
			})
		}
	}

	return result
}

// ClearAll removes every scoped key whose unprefixed name matches pattern.
// An empty pattern matches everything. Stops at the first failed removal.
func (s *Service) ClearAll(ctx context.Context, pattern string) bool {
	if !s.supported {
		s.warnNotSupported("clearAll")
		return false
	}

	matcher, err := regexp.Compile(pattern)
	if err != nil {
		s.reportError("clearAll", pattern, fmt.Errorf("invalid pattern: %w", err))
		return false
	}

	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.reportError("clearAll", "", err)
		return false
	}

	for _, key := range keys {
		suffix, ok := strings.CutPrefix(key, s.prefix)
		if !ok || !matcher.MatchString(suffix) {
			continue
		}
		if !s.Remove(ctx, suffix) {
			return false
		}
	}

	return true
}

// Keys returns all scoped keys without prefix, in the backing store order.
func (s *Service) Keys(ctx context.Context) []string {
	if !s.supported {
		s.warnNotSupported("keys")
		return []string{}
	}

	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.reportError("keys", "", err)
		return []string{}
	}

	result := make([]string, 0, len(keys))
	for _, key := range keys {
		if suffix, ok := strings.CutPrefix(key, s.prefix); ok {
			result = append(result, suffix)
		}
	}
	return result
}

// Length returns the number of scoped keys. Unlike the other operations it
// reports nothing when the store is unsupported.
func (s *Service) Length(ctx context.Context) int {
	if !s.supported {
		return 0
	}

	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.log.WithError(err).Debug("Failed to list keys for length")
		return 0
	}

	count := 0
	for _, key := range keys {
		if strings.HasPrefix(key, s.prefix) {
			count++
		}
	}
	return count
}

// load fetches and decodes the item stored for key. Missing items, the
// literal "null" and undecodable data all yield nil without an error.
func (s *Service) load(ctx context.Context, key string) (any, error) {
	item, ok, err := s.backend.GetItem(ctx, s.deriveKey(key))
	if err != nil {
		return nil, err
	}
	if !ok || item == "" || item == "null" {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal([]byte(item), &value); err != nil {
		s.log.WithField("key", key).Debugf("Ignoring undecodable item: %v", err)
		return nil, nil
	}
	return value, nil
}

func (s *Service) deriveKey(key string) string {
	return s.prefix + key
}

// checkSupport verifies that the backing store exists and accepts writes.
// Some stores only fail once written to (e.g. a full quota or read-only mounts).
func (s *Service) checkSupport(ctx context.Context) bool {
	if s.backend == nil {
		s.log.Debug("Backing store not available")
		return false
	}

	key := s.deriveKey("__" + uuid.NewString())
	if err := s.backend.SetItem(ctx, key, ""); err != nil {
		s.log.WithError(err).Warn("Backing store rejected probe write")
		return false
	}
	if err := s.backend.RemoveItem(ctx, key); err != nil {
		s.log.WithError(err).Warn("Backing store rejected probe removal")
		return false
	}

	s.log.Debug("Backing store available")
	return true
}

func (s *Service) warnNotSupported(op string) {
	s.log.WithField("op", op).Warn(ErrStorageNotSupported.Error())
	s.warnings.Emit(ErrStorageNotSupported.Error())
}

func (s *Service) reportError(op, key string, err error) {
	s.log.WithError(err).WithField("op", op).WithField("key", key).Error("Storage operation failed")
	s.errors.Emit(err.Error())
}
