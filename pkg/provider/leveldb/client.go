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
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type client struct {
	db *leveldb.DB
}

func (c *client) GetItem(_ context.Context, key string) (string, bool, error) {
	value, err := c.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get failed for key '%s': %w", key, err)
	}
	return string(value), true, nil
}

func (c *client) SetItem(_ context.Context, key, value string) error {
	err := c.db.Put([]byte(key), []byte(value), &opt.WriteOptions{
		Sync: true,
	})
	if err != nil {
		return fmt.Errorf("set failed for key '%s': %w", key, err)
	}
	return nil
}

func (c *client) RemoveItem(_ context.Context, key string) error {
	err := c.db.Delete([]byte(key), &opt.WriteOptions{
		Sync: true,
	})
	if err != nil {
		return fmt.Errorf("remove failed for key '%s': %w", key, err)
	}
	return nil
}

func (c *client) Keys(_ context.Context) ([]string, error) {
	iter := c.db.NewIterator(nil, nil)
	defer iter.Release()

	keys := make([]string, 0)
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	return keys, nil
}

func (c *client) Close() error {
	return c.db.Close()
}
