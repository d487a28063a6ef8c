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

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type Provider struct{}

func (p *Provider) NewBackend(_ context.Context, spec v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	return New(spec.Memory.QuotaBytes), nil
}

func (p *Provider) Validate(spec v1alpha1.BackendSpec) error {
	memoryCfg := spec.Memory
	if memoryCfg == nil {
		return fmt.Errorf("empty Memory config")
	}
	if memoryCfg.QuotaBytes < 0 {
		return fmt.Errorf("negative .Memory.QuotaBytes")
	}
	return nil
}

func init() {
	v1alpha1.Register(&Provider{}, &v1alpha1.BackendSpec{
		Memory: &v1alpha1.BackendMemory{},
	})
}
