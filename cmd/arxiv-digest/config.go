// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// defaultHistoryPath is the History Set location when none is configured.
func defaultHistoryPath() string {
	return filepath.Join(xdg.StateHome, "arxiv-digest", "history.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "arxiv-digest/"+version)
	v.SetDefault("http.max_retries", 5)
	v.SetDefault("http.base_url", "")

	v.SetDefault("fetch.strategy", string(types.StrategySinglePage))
	v.SetDefault("fetch.page_size", 0)
	v.SetDefault("fetch.step_ceiling", fetch.DefaultStepCeiling)
	v.SetDefault("fetch.window_max_results", fetch.DefaultWindowMaxResults)
	v.SetDefault("fetch.step_delay", 3*time.Second)

	v.SetDefault("history.backend", string(types.HistoryFile))
	v.SetDefault("history.path", defaultHistoryPath())

	v.SetDefault("report.format", string(types.ReportHTML))
	v.SetDefault("report.output", "")
	v.SetDefault("report.title", report.DefaultTitle)

	v.SetDefault("schedule", "@daily")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// cycleFlags maps flag names shared by run and watch to their viper keys.
var cycleFlags = map[string]string{
	"strategy":           "fetch.strategy",
	"page-size":          "fetch.page_size",
	"step-ceiling":       "fetch.step_ceiling",
	"window-max-results": "fetch.window_max_results",
	"step-delay":         "fetch.step_delay",
	"history-backend":    "history.backend",
	"history":            "history.path",
	"format":             "report.format",
	"output":             "report.output",
	"title":              "report.title",
	"timeout":            "http.timeout",
}

func addCycleFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("strategy", "", "fetch strategy: single-page or windowed")
	f.Int("page-size", 0, "single-page query size (default five times the count)")
	f.Int("step-ceiling", 0, fmt.Sprintf("maximum daily windows for the windowed strategy (default %d)", fetch.DefaultStepCeiling))
	f.Int("window-max-results", 0, fmt.Sprintf("results per daily window (default %d)", fetch.DefaultWindowMaxResults))
	f.Duration("step-delay", 0, "pause between windowed queries (default 3s)")
	f.String("history-backend", "", "history storage: file or sqlite")
	f.String("history", "", "history path (default under the XDG state directory)")
	f.String("format", "", "report format: html, pdf, markdown, yaml, or json")
	f.StringP("output", "o", "", "report path (default papers.<ext>)")
	f.String("title", "", "report title")
	f.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	f.Bool("dry-run", false, "fetch and render without recording delivered papers")
}

// bindCycleFlags binds cmd's flags to viper. run and watch share keys, so
// binding happens when a command executes rather than in init.
func bindCycleFlags(cmd *cobra.Command) error {
	for name, key := range cycleFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig decodes the merged defaults, config file, environment, and
// flags into a DigestConfig.
func loadConfig(v *viper.Viper) (types.DigestConfig, error) {
	var cfg types.DigestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.DigestConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.HTTP.UserAgent = loadedSecrets.UserAgent(cfg.HTTP.UserAgent)
	return cfg, nil
}
