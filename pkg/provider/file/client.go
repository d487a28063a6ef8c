package file

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const itemExt = ".item"

type client struct {
	mu  sync.RWMutex
	dir string
}

func (c *client) GetItem(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fpath := c.pathForKey(key)
	data, err := os.ReadFile(fpath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get failed to read file '%s': %w", fpath, err)
	}
	return string(data), true, nil
}

func (c *client) SetItem(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Create store dir
	if err := os.MkdirAll(c.dir, os.ModePerm); err != nil {
		return fmt.Errorf("set failed to create dir '%s': %w", c.dir, err)
	}

	// Write file
	fpath := c.pathForKey(key)
	if err := os.WriteFile(fpath, []byte(value), 0600); err != nil {
		return fmt.Errorf("set failed to write file '%s': %w", fpath, err)
	}

	return nil
}

func (c *client) RemoveItem(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fpath := c.pathForKey(key)
	if err := os.Remove(fpath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove failed to delete file '%s': %w", fpath, err)
	}
	return nil
}

func (c *client) Keys(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list failed to read dir '%s': %w", c.dir, err)
	}

	// Only regular item files are keys, anything else in the dir is ignored
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), itemExt)
		if !ok || !entry.Type().IsRegular() {
			continue
		}
		key, err := base64.RawURLEncoding.DecodeString(name)
		if err != nil {
			continue
		}
		result = append(result, string(key))
	}
	sort.Strings(result)

	return result, nil
}

// pathForKey encodes key so that any key maps to a single flat file name.
func (c *client) pathForKey(key string) string {
	return filepath.Join(c.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+itemExt)
}
