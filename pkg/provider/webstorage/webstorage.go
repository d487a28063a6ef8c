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

//go:build js && wasm

// Package webstorage binds the browser localStorage and sessionStorage
// objects as backing stores.
package webstorage

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type host struct {
	global js.Value
}

// NewHost returns a Host resolving backing stores from the JS global object.
func NewHost() v1alpha1.Host {
	return &host{global: js.Global()}
}

// Storage returns nil if the global is missing, null, or throws on access
// (e.g. sandboxed frames with storage disabled).
func (h *host) Storage(kind v1alpha1.StorageType) (backend v1alpha1.Backend) {
	defer func() {
		if recover() != nil {
			backend = nil
		}
	}()

	storage := h.global.Get(string(kind))
	if storage.IsUndefined() || storage.IsNull() {
		return nil
	}
	return &client{storage: storage}
}

type client struct {
	storage js.Value
}

func (c *client) GetItem(_ context.Context, key string) (value string, ok bool, err error) {
	defer recoverError(&err)

	item := c.storage.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", false, nil
	}
	return item.String(), true, nil
}

func (c *client) SetItem(_ context.Context, key, value string) (err error) {
	defer recoverError(&err)

	c.storage.Call("setItem", key, value)
	return nil
}

func (c *client) RemoveItem(_ context.Context, key string) (err error) {
	defer recoverError(&err)

	c.storage.Call("removeItem", key)
	return nil
}

func (c *client) Keys(_ context.Context) (keys []string, err error) {
	defer recoverError(&err)

	length := c.storage.Get("length").Int()
	keys = make([]string, 0, length)
	for i := 0; i < length; i++ {
		key := c.storage.Call("key", i)
		if key.IsNull() {
			continue
		}
		keys = append(keys, key.String())
	}
	return keys, nil
}

// recoverError converts a thrown JS exception (e.g. QuotaExceededError) into err.
func recoverError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = fmt.Errorf("%s", jsErr.Get("message").String())
		return
	}
	*err = fmt.Errorf("%v", r)
}
