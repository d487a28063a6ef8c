package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/bank-vaults/vault-sdk/vault"
	"github.com/pkg/errors"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type Provider struct{}

func (p *Provider) NewBackend(_ context.Context, spec v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	vaultCfg := spec.Vault
	apiClient, err := vault.NewClientWithOptions(
		vault.ClientURL(vaultCfg.Address),
		vault.ClientRole(vaultCfg.Role),
		vault.ClientAuthPath(vaultCfg.AuthPath),
		vault.ClientTokenPath(vaultCfg.TokenPath),
		vault.ClientToken(vaultCfg.Token))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create vault client")
	}

	return &client{
		apiClient: apiClient,
		mountPath: strings.TrimSuffix(vaultCfg.MountPath, "/"),
	}, nil
}

func (p *Provider) Validate(spec v1alpha1.BackendSpec) error {
	vaultCfg := spec.Vault
	if vaultCfg == nil {
		return fmt.Errorf("empty Vault config")
	}
	if vaultCfg.Address == "" {
		return fmt.Errorf("empty .Vault.Address")
	}
	if vaultCfg.MountPath == "" {
		return fmt.Errorf("empty .Vault.MountPath")
	}
	if vaultCfg.Token == "" && vaultCfg.TokenPath == "" && vaultCfg.Role == "" {
		return fmt.Errorf("one of .Vault.Token, .Vault.TokenPath or .Vault.Role required")
	}
	return nil
}

func init() {
	v1alpha1.Register(&Provider{}, &v1alpha1.BackendSpec{
		Vault: &v1alpha1.BackendVault{},
	})
}
