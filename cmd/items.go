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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY [PATH...]",
		Short: "Prints the JSON value stored under a key, optionally resolved along a nested path.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := a.service.Get(cmd.Context(), args[0], args[1:]...)
			if len(a.problems) > 0 {
				return a.failed("get")
			}

			data, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode value: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE [PATH...]",
		Short: "Stores a value under a key, optionally at a nested path inside the stored value.",
		Long: `Stores a value under a key, optionally at a nested path inside the stored value.
VALUE is parsed as JSON; anything that is not valid JSON is stored as a string.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.service.Set(cmd.Context(), parseValue(args[1]), args[0], args[2:]...) {
				return a.failed("set")
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY...",
		Short: "Removes the given keys.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.service.Remove(cmd.Context(), args...) {
				return a.failed("remove")
			}
			return nil
		},
	}
}

// parseValue decodes raw as JSON, falling back to raw itself as a string.
func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
