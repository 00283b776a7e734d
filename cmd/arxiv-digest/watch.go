// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/internal/schedule"
)

var watchCmd = &cobra.Command{
	Use:   "watch <keyword> <count>",
	Short: "Repeat the run cycle on a cron schedule",
	Long: `Watch runs the same cycle as "run" on a cron schedule until interrupted.
Each report gets a UTC timestamp before its extension, so earlier reports are
kept. A failed cycle is logged and the next tick proceeds normally.

The schedule accepts five-field cron expressions and descriptors such as
"@daily" or "@every 6h".`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	addCycleFlags(watchCmd)
	watchCmd.Flags().String("schedule", "", `cron expression (default "@daily")`)
	watchCmd.Flags().Bool("now", true, "run one cycle immediately on start")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	req, err := parseRequest(args)
	if err != nil {
		return err
	}
	if err := bindCycleFlags(cmd); err != nil {
		return err
	}
	if err := viper.BindPFlag("schedule", cmd.Flags().Lookup("schedule")); err != nil {
		return err
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if err := schedule.Validate(cfg.Schedule); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	now, _ := cmd.Flags().GetBool("now")

	c, err := newCycle(cfg, dryRun, logger)
	if err != nil {
		return err
	}

	base := c.reportPath()
	job := func(ctx context.Context) error {
		_, _, err := c.run(ctx, req, report.TimestampedPath(base, time.Now()))
		return err
	}

	return schedule.Run(cmd.Context(), cfg.Schedule, job, schedule.Options{RunImmediately: now}, logger)
}
