// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the delivered-paper history",
	Long: `History reads the persisted set of delivered arXiv IDs. It never modifies
the history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every delivered arXiv ID, sorted",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of delivered arXiv IDs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCount,
}

func init() {
	historyCmd.PersistentFlags().String("history-backend", "", "history storage: file or sqlite")
	historyCmd.PersistentFlags().String("history", "", "history path (default under the XDG state directory)")
	viper.BindPFlag("history.backend", historyCmd.PersistentFlags().Lookup("history-backend"))
	viper.BindPFlag("history.path", historyCmd.PersistentFlags().Lookup("history"))

	historyCmd.AddCommand(historyListCmd, historyCountCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadHistory(cmd *cobra.Command) (history.Set, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, err
	}
	return store.Load(cmd.Context())
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ids, err := loadHistory(cmd)
	if err != nil {
		return err
	}
	for _, id := range ids.IDs() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runHistoryCount(cmd *cobra.Command, args []string) error {
	ids, err := loadHistory(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ids.Len())
	return nil
}
