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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
	"github.com/bank-vaults/scoped-storage/pkg/config"
	"github.com/bank-vaults/scoped-storage/pkg/provider"
	"github.com/bank-vaults/scoped-storage/pkg/storage"
	"github.com/bank-vaults/scoped-storage/pkg/utils"
)

const (
	flagConfig      = "config"
	flagPrefix      = "prefix"
	flagStorageType = "storage-type"
)

// DefaultStorageDir is used as the localStorage dir when no config file is given.
var DefaultStorageDir = filepath.Join(os.TempDir(), "scoped-storage")

// app holds the state shared by all subcommands of a single invocation.
type app struct {
	flagConfig      string
	flagPrefix      string
	flagStorageType string

	log     *logrus.Entry
	host    *provider.Host
	service *storage.Service

	// Messages reported by the service during the current command
	problems []string
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use: "scoped-storage",
		Long: `Scoped Storage exposes a namespaced JSON key-value view over a web-storage-like
backing store (files, LevelDB, Vault, Kubernetes ConfigMaps or memory).`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.flagConfig, flagConfig, "c", "", "Storage config file. "+
		"Defaults to $"+config.StorageConfigEnv+", or a file store in "+DefaultStorageDir+".")
	rootCmd.PersistentFlags().StringVar(&a.flagPrefix, flagPrefix, "", "Overrides the configured key prefix.")
	rootCmd.PersistentFlags().StringVar(&a.flagStorageType, flagStorageType, "",
		fmt.Sprintf("Overrides the configured storage type (%s or %s).", v1alpha1.StorageTypeLocal, v1alpha1.StorageTypeSession))

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newRemoveCmd(a),
		newKeysCmd(a),
		newLengthCmd(a),
		newClearCmd(a),
		newTypeCmd(a),
	)

	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Errorf("failed to execute command: %v", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.log = utils.InitLogger(cfg)

	// Load storage config and override from cli
	path := a.flagConfig
	if path == "" {
		path = cfg.StorageConfigPath
	}
	storageCfg, err := loadStorageFile(path)
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}
	if cmd.Flags().Changed(flagPrefix) {
		storageCfg.Storage.Prefix = &a.flagPrefix
	}
	if cmd.Flags().Changed(flagStorageType) {
		storageCfg.Storage.StorageType = v1alpha1.StorageType(a.flagStorageType)
	}
	if err := storageCfg.Storage.Validate(); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}

	// Init backing stores and service
	host, err := provider.NewHost(cmd.Context(), storageCfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create backing stores: %w", err)
	}
	a.host = host
	a.service = storage.New(cmd.Context(), host, storageCfg.Storage, storage.WithLogger(a.log))
	a.subscribe()

	return nil
}

func (a *app) close() error {
	if a.host == nil {
		return nil
	}
	return a.host.Close()
}

func (a *app) subscribe() {
	report := func(msg string) { a.problems = append(a.problems, msg) }
	a.service.Warnings().Subscribe(report)
	a.service.Errors().Subscribe(report)

	a.service.SetItems().Subscribe(func(event v1alpha1.ChangeEvent) {
		a.log.WithField("key", event.Key).WithField("path", event.Path).Infof("Item set in %s", event.StorageType)
	})
	a.service.RemoveItems().Subscribe(func(event v1alpha1.ChangeEvent) {
		a.log.WithField("key", event.Key).Infof("Item removed from %s", event.StorageType)
	})
}

// failed builds the error returned by a command whose operation reported false.
func (a *app) failed(op string) error {
	defer func() { a.problems = nil }()

	if len(a.problems) == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %s", op, strings.Join(a.problems, "; "))
}
