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

// BackendSpec defines which provider should be used for a backing store.
// Only one can be specified.
type BackendSpec struct {
	// Used for in-process Memory provider.
	Memory *BackendMemory `json:"memory,omitempty"`

	// Used for non-encrypted File provider.
	File *BackendFile `json:"file,omitempty"`

	// Used for LevelDB provider.
	LevelDB *BackendLevelDB `json:"leveldb,omitempty"`

	// Used for Vault provider.
	Vault *BackendVault `json:"vault,omitempty"`

	// Used for Kubernetes ConfigMap provider.
	Kubernetes *BackendKubernetes `json:"kubernetes,omitempty"`
}

// HostSpec defines backing stores per StorageType.
type HostSpec struct {
	// Used as the persistent store. Left unavailable if not specified.
	// Optional
	LocalStorage *BackendSpec `json:"localStorage,omitempty"`

	// Used as the session store. Defaults to Memory.
	// Optional
	SessionStorage *BackendSpec `json:"sessionStorage,omitempty"`
}

// GetSessionStorage returns the session store spec, defaulting to Memory.
func (spec *HostSpec) GetSessionStorage() *BackendSpec {
	if spec.SessionStorage == nil {
		return &BackendSpec{Memory: &BackendMemory{}}
	}
	return spec.SessionStorage
}

type BackendMemory struct {
	// Maximum summed size of keys and values in bytes. Zero means unlimited.
	QuotaBytes int `json:"quota-bytes,omitempty"`
}

type BackendFile struct {
	DirPath string `json:"dir-path"`
}

type BackendLevelDB struct {
	Path string `json:"path"`
}

type BackendVault struct {
	Address   string `json:"address"`
	MountPath string `json:"mount-path"`
	Role      string `json:"role"`
	AuthPath  string `json:"auth-path"`
	TokenPath string `json:"token-path"`
	Token     string `json:"token"`
}

type BackendKubernetes struct {
	// Path to a kubeconfig. Empty uses in-cluster config.
	ConfigPath string `json:"config-path"`
	Namespace  string `json:"namespace"`
	// Name of the ConfigMap holding the items.
	Name string `json:"name"`
}
