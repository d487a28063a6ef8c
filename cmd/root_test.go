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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	cfgFile := storeFile(t, t.TempDir())

	_, err := run(t, context.Background(), "-c", cfgFile, "set", "user", `{"name":"ada"}`)
	require.NoError(t, err)
	_, err = run(t, context.Background(), "-c", cfgFile, "set", "user", "42", "langs", "go")
	require.NoError(t, err)
	_, err = run(t, context.Background(), "-c", cfgFile, "set", "plain", "not json")
	require.NoError(t, err)

	out, err := run(t, context.Background(), "-c", cfgFile, "get", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ada","langs":{"go":42}}`, out)

	out, err = run(t, context.Background(), "-c", cfgFile, "get", "user", "langs", "go")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	out, err = run(t, context.Background(), "-c", cfgFile, "get", "plain")
	require.NoError(t, err)
	assert.Equal(t, "\"not json\"\n", out)

	out, err = run(t, context.Background(), "-c", cfgFile, "get", "missing")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	out, err = run(t, context.Background(), "-c", cfgFile, "keys")
	require.NoError(t, err)
	assert.Equal(t, "plain\nuser\n", out)

	out, err = run(t, context.Background(), "-c", cfgFile, "length")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	// A different prefix sees nothing
	out, err = run(t, context.Background(), "-c", cfgFile, "--prefix", "other", "length")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	_, err = run(t, context.Background(), "-c", cfgFile, "remove", "plain")
	require.NoError(t, err)

	_, err = run(t, context.Background(), "-c", cfgFile, "clear", "--pattern", "^us")
	require.NoError(t, err)

	out, err = run(t, context.Background(), "-c", cfgFile, "length")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestCommandsUnsupported(t *testing.T) {
	cfgFile := storeFile(t, t.TempDir())

	out, err := run(t, context.Background(), "-c", cfgFile, "--storage-type", "sessionStorage", "type")
	require.NoError(t, err)
	assert.Equal(t, "sessionStorage\n", out)

	// The config file above has no sessionStorage override, so it is memory backed.
	_, err = run(t, context.Background(), "-c", cfgFile, "--storage-type", "sessionStorage", "set", "k", "1")
	require.NoError(t, err)

	// An explicitly missing localStorage is unsupported
	emptyCfg := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(emptyCfg, []byte("storage:\n  prefix: app\n"), 0600))

	_, err = run(t, context.Background(), "-c", emptyCfg, "set", "k", "1")
	assert.ErrorContains(t, err, "LOCAL_STORAGE_NOT_SUPPORTED")

	_, err = run(t, context.Background(), "-c", emptyCfg, "keys")
	assert.ErrorContains(t, err, "LOCAL_STORAGE_NOT_SUPPORTED")

	out, err = run(t, context.Background(), "-c", emptyCfg, "length")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestCommandsInvalid(t *testing.T) {
	cfgFile := storeFile(t, t.TempDir())

	_, err := run(t, context.Background(), "-c", cfgFile, "--storage-type", "cookies", "keys")
	assert.Error(t, err)

	_, err = run(t, context.Background(), "-c", filepath.Join(t.TempDir(), "missing.yaml"), "keys")
	assert.Error(t, err)

	_, err = run(t, context.Background(), "-c", cfgFile, "clear", "--pattern", "val([")
	assert.ErrorContains(t, err, "invalid pattern")

	_, err = run(t, context.Background(), "-c", cfgFile, "clear", "--schedule", "not a schedule")
	assert.ErrorContains(t, err, "invalid schedule")

	_, err = run(t, context.Background(), "-c", cfgFile, "set", "k")
	assert.Error(t, err)
}

func TestClearScheduled(t *testing.T) {
	cfgFile := storeFile(t, t.TempDir())

	_, err := run(t, context.Background(), "-c", cfgFile, "set", "k", "1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	_, err = run(t, ctx, "-c", cfgFile, "clear", "--schedule", "@every 1s")
	require.NoError(t, err)

	out, err := run(t, context.Background(), "-c", cfgFile, "length")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestLoadStorageFile(t *testing.T) {
	storageCfg, err := loadStorageFile("")
	require.NoError(t, err)
	require.NotNil(t, storageCfg.Host.LocalStorage)
	assert.Equal(t, DefaultStorageDir, storageCfg.Host.LocalStorage.File.DirPath)

	path := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  prefix: app
  storageType: sessionStorage
  notifyOptions:
    setItem: true
host:
  localStorage:
    leveldb:
      path: /var/lib/app
  sessionStorage:
    memory:
      quota-bytes: 5242880
`), 0600))

	storageCfg, err = loadStorageFile(path)
	require.NoError(t, err)
	assert.Equal(t, "app.", storageCfg.Storage.GetPrefix())
	assert.Equal(t, "sessionStorage", string(storageCfg.Storage.GetStorageType()))
	assert.True(t, storageCfg.Storage.GetNotifyOptions().SetItem)
	assert.Equal(t, "/var/lib/app", storageCfg.Host.LocalStorage.LevelDB.Path)
	assert.Equal(t, 5242880, storageCfg.Host.SessionStorage.Memory.QuotaBytes)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, float64(1), parseValue("1"))
	assert.Equal(t, map[string]any{"a": true}, parseValue(`{"a":true}`))
	assert.Equal(t, "hello", parseValue(`"hello"`))
	assert.Equal(t, "hello world", parseValue("hello world"))
	assert.Nil(t, parseValue("null"))
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	logrus.SetOutput(io.Discard)
	return out.String(), err
}

func storeFile(t *testing.T, dirPath string) string {
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "storage.yaml")
	err := os.WriteFile(path, []byte(fmt.Sprintf(`
storage:
  prefix: test
host:
  localStorage:
    file:
      dir-path: %q
`, filepath.ToSlash(dirPath))), 0600)
	require.NoError(t, err)

	return path
}
