// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run <keyword> <count>",
	Short: "Fetch up to count new papers for keyword and write a report",
	Long: `Run performs one cycle: it loads the delivered-paper history, queries arXiv
for papers matching keyword that have not been delivered, records the new
IDs in the history, and writes them to a report.

If the history is corrupt or arXiv fails, the run stops before the history
or the report is touched. Finding fewer than count papers is not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	addCycleFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	req, err := parseRequest(args)
	if err != nil {
		return err
	}
	if err := bindCycleFlags(cmd); err != nil {
		return err
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	c, err := newCycle(cfg, dryRun, logger)
	if err != nil {
		return err
	}

	res, path, err := c.run(cmd.Context(), req, c.reportPath())
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing requested.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d new paper(s) written to %s\n", len(res.Items), path)
	if res.Short() {
		fmt.Fprintf(cmd.OutOrStdout(), "Only %d of %d requested papers were new.\n", len(res.Items), res.Requested)
	}
	return nil
}
