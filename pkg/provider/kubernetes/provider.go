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

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type Provider struct{}

func (p *Provider) NewBackend(_ context.Context, spec v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	providerCfg := spec.Kubernetes
	kubeConfig, err := clientcmd.BuildConfigFromFlags("", providerCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}
	kubeClient, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube client: %w", err)
	}

	return newClient(kubeClient, providerCfg.Namespace, providerCfg.Name), nil
}

func (p *Provider) Validate(spec v1alpha1.BackendSpec) error {
	providerCfg := spec.Kubernetes
	if providerCfg == nil {
		return fmt.Errorf("empty Kubernetes config")
	}
	if providerCfg.Namespace == "" {
		return fmt.Errorf("empty .Kubernetes.Namespace")
	}
	if providerCfg.Name == "" {
		return fmt.Errorf("empty .Kubernetes.Name")
	}
	return nil
}

func newClient(kubeClient kubernetes.Interface, namespace, name string) *client {
	return &client{
		name:       name,
		configMaps: kubeClient.CoreV1().ConfigMaps(namespace),
	}
}

func init() {
	v1alpha1.Register(&Provider{}, &v1alpha1.BackendSpec{
		Kubernetes: &v1alpha1.BackendKubernetes{},
	})
}
