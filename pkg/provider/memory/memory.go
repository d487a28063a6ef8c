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

package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type store struct {
	mu    sync.RWMutex
	quota int
	size  int
	keys  []string
	items map[string]string
}

// New creates an in-process Backend that enumerates keys in insertion order.
// A positive quota limits the summed size of keys and values in bytes.
func New(quota int) v1alpha1.Backend {
	return &store{
		quota: quota,
		items: map[string]string{},
	}
}

func (s *store) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *store) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, exists := s.items[key]
	size := s.size + len(value)
	if exists {
		size -= len(old)
	} else {
		size += len(key)
	}
	if s.quota > 0 && size > s.quota {
		return fmt.Errorf("failed to set '%s': %w (%d of %d bytes)", key, v1alpha1.ErrQuotaExceeded, size, s.quota)
	}

	if !exists {
		s.keys = append(s.keys, key)
	}
	s.items[key] = value
	s.size = size
	return nil
}

func (s *store) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.items[key]
	if !exists {
		return nil
	}

	delete(s.items, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
	s.size -= len(key) + len(value)
	return nil
}

func (s *store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.keys), nil
}
