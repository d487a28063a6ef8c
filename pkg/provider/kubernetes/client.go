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

package kubernetes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	clientv1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/util/retry"
)

// client keeps all items as data entries of a single ConfigMap.
type client struct {
	name       string
	configMaps clientv1.ConfigMapInterface
}

func (c *client) GetItem(ctx context.Context, key string) (string, bool, error) {
	configMap, err := c.configMaps.Get(ctx, c.name, metav1.GetOptions{})
	if errors.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get failed for key '%s': %w", key, err)
	}

	value, ok := configMap.Data[key]
	return value, ok, nil
}

func (c *client) SetItem(ctx context.Context, key, value string) error {
	if errs := validation.IsConfigMapKey(key); len(errs) > 0 {
		return fmt.Errorf("invalid key '%s': %s", key, strings.Join(errs, "; "))
	}

	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		// Get
		configMap, err := c.configMaps.Get(ctx, c.name, metav1.GetOptions{})
		if errors.IsNotFound(err) {
			// Create
			_, err = c.configMaps.Create(ctx,
				&apiv1.ConfigMap{
					ObjectMeta: metav1.ObjectMeta{
						Name: c.name,
					},
					Data: map[string]string{
						key: value,
					},
				},
				metav1.CreateOptions{},
			)
			return err
		}
		if err != nil {
			return err
		}

		// Update
		if current, ok := configMap.Data[key]; ok && current == value {
			return nil
		}
		if configMap.Data == nil {
			configMap.Data = map[string]string{}
		}
		configMap.Data[key] = value
		_, err = c.configMaps.Update(ctx, configMap, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return fmt.Errorf("set failed for key '%s': %w", key, err)
	}
	return nil
}

func (c *client) RemoveItem(ctx context.Context, key string) error {
	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		configMap, err := c.configMaps.Get(ctx, c.name, metav1.GetOptions{})
		if errors.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, ok := configMap.Data[key]; !ok {
			return nil
		}
		delete(configMap.Data, key)
		_, err = c.configMaps.Update(ctx, configMap, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return fmt.Errorf("remove failed for key '%s': %w", key, err)
	}
	return nil
}

func (c *client) Keys(ctx context.Context) ([]string, error) {
	configMap, err := c.configMaps.Get(ctx, c.name, metav1.GetOptions{})
	if errors.IsNotFound(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}

	keys := make([]string, 0, len(configMap.Data))
	for key := range configMap.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
