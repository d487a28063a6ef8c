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

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

// storageFile defines the layout of a storage config file.
type storageFile struct {
	Storage v1alpha1.StorageConfig `json:"storage"`
	Host    v1alpha1.HostSpec      `json:"host"`
}

// loadStorageFile loads a storage config file. An empty path returns a config
// that keeps localStorage in DefaultStorageDir.
func loadStorageFile(path string) (*storageFile, error) {
	if path == "" {
		return &storageFile{
			Host: v1alpha1.HostSpec{
				LocalStorage: &v1alpha1.BackendSpec{
					File: &v1alpha1.BackendFile{DirPath: DefaultStorageDir},
				},
			},
		}, nil
	}

	// Load file
	yamlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal (convert YAML to JSON)
	var storageCfg storageFile

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &storageCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &storageCfg, nil
}
