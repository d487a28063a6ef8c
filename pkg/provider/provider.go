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

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
	// Register providers
	_ "github.com/bank-vaults/scoped-storage/pkg/provider/file"
	_ "github.com/bank-vaults/scoped-storage/pkg/provider/kubernetes"
	_ "github.com/bank-vaults/scoped-storage/pkg/provider/leveldb"
	_ "github.com/bank-vaults/scoped-storage/pkg/provider/memory"
	_ "github.com/bank-vaults/scoped-storage/pkg/provider/vault"
)

// NewBackend creates a backing store for provided spec.
func NewBackend(ctx context.Context, spec *v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	// Get provider
	provider, err := v1alpha1.GetProvider(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	// Validate
	if err = provider.Validate(*spec); err != nil {
		return nil, fmt.Errorf("failed to validate backend spec: %w", err)
	}

	// Create
	backend, err := provider.NewBackend(ctx, *spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	return backend, nil
}

// Host holds the backing stores created from a HostSpec.
type Host struct {
	stores map[v1alpha1.StorageType]v1alpha1.Backend
}

var _ v1alpha1.Host = &Host{}

// NewHost creates all backing stores configured in spec. A kind without a
// spec is left unavailable, except sessionStorage which defaults to memory.
func NewHost(ctx context.Context, spec v1alpha1.HostSpec) (*Host, error) {
	host := &Host{
		stores: map[v1alpha1.StorageType]v1alpha1.Backend{},
	}

	specs := map[v1alpha1.StorageType]*v1alpha1.BackendSpec{
		v1alpha1.StorageTypeLocal:   spec.LocalStorage,
		v1alpha1.StorageTypeSession: spec.GetSessionStorage(),
	}
	for kind, backendSpec := range specs {
		if backendSpec == nil {
			continue
		}

		backend, err := NewBackend(ctx, backendSpec)
		if err != nil {
			_ = host.Close()
			return nil, fmt.Errorf("failed to create %s: %w", kind, err)
		}
		host.stores[kind] = backend
	}

	return host, nil
}

// Storage returns the backing store for kind, or nil if not configured.
func (h *Host) Storage(kind v1alpha1.StorageType) v1alpha1.Backend {
	return h.stores[kind]
}

// Close releases backing stores that hold resources (e.g. open databases).
func (h *Host) Close() error {
	var errs []error
	for kind, backend := range h.stores {
		if closer, ok := backend.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close %s: %w", kind, err))
			}
		}
	}
	h.stores = map[v1alpha1.StorageType]v1alpha1.Backend{}
	return errors.Join(errs...)
}
