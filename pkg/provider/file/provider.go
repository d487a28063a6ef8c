package file

import (
	"context"
	"fmt"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

type Provider struct{}

func (p *Provider) NewBackend(_ context.Context, spec v1alpha1.BackendSpec) (v1alpha1.Backend, error) {
	return &client{
		dir: spec.File.DirPath,
	}, nil
}

func (p *Provider) Validate(spec v1alpha1.BackendSpec) error {
	fileCfg := spec.File
	if fileCfg == nil {
		return fmt.Errorf("empty File config")
	}
	if fileCfg.DirPath == "" {
		return fmt.Errorf("empty .File.DirPath")
	}
	return nil
}

func init() {
	v1alpha1.Register(&Provider{}, &v1alpha1.BackendSpec{
		File: &v1alpha1.BackendFile{},
	})
}
