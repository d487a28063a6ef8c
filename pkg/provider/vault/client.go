package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/bank-vaults/vault-sdk/vault"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// valueField is the secret data field an item value is kept in.
const valueField = "value"

type client struct {
	apiClient *vault.Client
	mountPath string
}

func (c *client) GetItem(ctx context.Context, key string) (string, bool, error) {
	// Get secret from API
	response, err := c.apiClient.RawClient().Logical().ReadWithContext(ctx, c.dataPath(key))
	if err != nil {
		return "", false, errors.Wrapf(err, "api get request failed for key '%s'", key)
	}
	if response == nil || response.Data == nil {
		return "", false, nil
	}

	// Extract key value data. Deleted versions have nil data.
	secretData, ok := response.Data["data"]
	if !ok || secretData == nil {
		return "", false, nil
	}
	data, err := cast.ToStringMapE(secretData)
	if err != nil {
		return "", false, errors.Wrapf(err, "api get request returned invalid data for key '%s'", key)
	}

	valueData, ok := data[valueField]
	if !ok {
		return "", false, nil
	}
	value, err := cast.ToStringE(valueData)
	if err != nil {
		return "", false, errors.Wrapf(err, "api get request returned invalid value for key '%s'", key)
	}
	return value, true, nil
}

func (c *client) SetItem(ctx context.Context, key, value string) error {
	_, err := c.apiClient.RawClient().Logical().WriteWithContext(
		ctx,
		c.dataPath(key),
		map[string]interface{}{
			"data": map[string]interface{}{
				valueField: value,
			},
		},
	)
	if err != nil {
		return errors.Wrapf(err, "api set request failed for key '%s'", key)
	}
	return nil
}

func (c *client) RemoveItem(ctx context.Context, key string) error {
	// Deleting metadata removes all versions, so the key stops being listed
	_, err := c.apiClient.RawClient().Logical().DeleteWithContext(ctx, c.metadataPath(key))
	if err != nil {
		return errors.Wrapf(err, "api remove request failed for key '%s'", key)
	}
	return nil
}

func (c *client) Keys(ctx context.Context) ([]string, error) {
	return c.recursiveList(ctx, "")
}

func (c *client) recursiveList(ctx context.Context, path string) ([]string, error) {
	// List API request
	response, err := c.apiClient.RawClient().Logical().ListWithContext(ctx, c.metadataPath(path))
	if err != nil {
		return nil, errors.Wrap(err, "api list request failed")
	}
	if response == nil || response.Data == nil {
		return []string{}, nil
	}

	// Read from response
	listData, ok := response.Data["keys"]
	if !ok || listData == nil {
		return []string{}, nil
	}
	listSlice, err := cast.ToSliceE(listData)
	if err != nil {
		return nil, fmt.Errorf("api list returned invalid data for path '%s': %w", path, err)
	}

	// A listed key can be either an item or a dir (marked by a suffix '/').
	// Dirs are listed recursively.
	result := make([]string, 0, len(listSlice))
	for _, listKey := range listSlice {
		subKey := path + cast.ToString(listKey)
		if !strings.HasSuffix(subKey, "/") {
			result = append(result, subKey)
			continue
		}

		subKeys, err := c.recursiveList(ctx, subKey)
		if err != nil {
			return nil, err
		}
		result = append(result, subKeys...)
	}

	return result, nil
}

func (c *client) dataPath(key string) string {
	return fmt.Sprintf("%s/data/%s", c.mountPath, key)
}

func (c *client) metadataPath(key string) string {
	return fmt.Sprintf("%s/metadata/%s", c.mountPath, key)
}

func (c *client) Close() error {
	c.apiClient.Close()
	return nil
}
