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
	"fmt"
	"time"

	"github.com/krayzpipes/cronticker/cronticker"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"
)

type clearCmd struct {
	app          *app
	flagPattern  string
	flagSchedule string
}

func newClearCmd(a *app) *cobra.Command {
	cmd := &clearCmd{app: a}
	cobraCmd := &cobra.Command{
		Use:   "clear",
		Short: "Removes all keys under the configured prefix, or only those matching a pattern.",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if cmd.flagSchedule == "" {
				return cmd.clear(cobraCmd)
			}
			return cmd.runScheduled(cobraCmd)
		},
	}

	cobraCmd.Flags().StringVar(&cmd.flagPattern, "pattern", "",
		"Only remove keys whose unprefixed name matches this regular expression.")
	cobraCmd.Flags().StringVar(&cmd.flagSchedule, "schedule", "",
		"Clear periodically using CRON schedule. If not specified, runs only once.")

	return cobraCmd
}

func (cmd *clearCmd) clear(cobraCmd *cobra.Command) error {
	if !cmd.app.service.ClearAll(cobraCmd.Context(), cmd.flagPattern) {
		return cmd.app.failed("clear")
	}
	return nil
}

// runScheduled clears on every schedule tick until the command context is done.
func (cmd *clearCmd) runScheduled(cobraCmd *cobra.Command) error {
	ctx := cobraCmd.Context()

	schedule, err := cron.ParseStandard(cmd.flagSchedule)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cmd.flagSchedule, err)
	}

	cronTicker, err := cronticker.NewTicker(cmd.flagSchedule)
	if err != nil {
		return err
	}
	defer cronTicker.Stop()

	log := cmd.app.log.WithField("schedule", cmd.flagSchedule)
	log.Infof("Clearing on schedule, next run at %s", schedule.Next(time.Now()).Format(time.RFC3339))

	for {
		select {
		case <-cronTicker.C:
			if err := cmd.clear(cobraCmd); err != nil {
				// Keep the schedule running, the next tick may succeed
				log.WithError(err).Warn("Scheduled clear failed")
				continue
			}
			log.Info("Scheduled clear completed")

		case <-ctx.Done():
			return nil
		}
	}
}
