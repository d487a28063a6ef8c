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
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	providers  = map[string]BackendProvider{}
	providerMu sync.RWMutex
)

// Register a BackendProvider for a given spec. Panics if a provider for the
// same spec field is already registered.
func Register(provider BackendProvider, spec *BackendSpec) {
	providerName, err := getProviderName(spec)
	if err != nil {
		panic(fmt.Errorf("error registering backend provider: %w", err))
	}

	providerMu.Lock()
	defer providerMu.Unlock()

	if _, exists := providers[providerName]; exists {
		panic(fmt.Errorf("backend provider %s already registered", providerName))
	}

	providers[providerName] = provider
}

// GetProvider returns the BackendProvider for given BackendSpec.
func GetProvider(spec *BackendSpec) (BackendProvider, error) {
	providerName, err := getProviderName(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to find backend provider: %w", err)
	}

	providerMu.RLock()
	defer providerMu.RUnlock()

	provider, ok := providers[providerName]
	if !ok {
		return nil, fmt.Errorf("failed to find registered backend provider for %s", providerName)
	}

	return provider, nil
}

// getProviderName returns the name of the configured BackendSpec field or an
// error if the spec is invalid/not configured.
func getProviderName(spec *BackendSpec) (string, error) {
	if spec == nil {
		return "", errors.New("no BackendSpec provided")
	}

	nonNilKey, nonNilCount := "", 0
	v := reflect.ValueOf(*spec)
	for num := 0; num < v.NumField(); num++ {
		if !v.Field(num).IsNil() {
			nonNilKey = v.Type().Field(num).Name
			nonNilCount++
		}

		if nonNilCount > 1 {
			break
		}
	}

	if nonNilCount != 1 {
		return "", fmt.Errorf("only one provider required for BackendSpec, found %d", nonNilCount)
	}

	return nonNilKey, nil
}
