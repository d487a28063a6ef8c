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

package leveldb

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type Provider struct{}

func (p *Provider) NewBackend(_ context.Context, spec v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	db, err := leveldb.OpenFile(spec.LevelDB.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at '%s': %w", spec.LevelDB.Path, err)
	}

	return &client{
		db: db,
	}, nil
}

func (p *Provider) Validate(spec v1alpha1.BackendSpec) error {
	levelCfg := spec.LevelDB
	if levelCfg == nil {
		return fmt.Errorf("empty LevelDB config")
	}
	if levelCfg.Path == "" {
		return fmt.Errorf("empty .LevelDB.Path")
	}
	return nil
}

func init() {
	v1alpha1.Register(&Provider{}, &v1alpha1.BackendSpec{
		LevelDB: &v1alpha1.BackendLevelDB{},
	})
}
