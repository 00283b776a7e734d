// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/catalog"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/history"
	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// parseRequest turns the <keyword> <count> arguments into a FetchRequest.
// A zero count is accepted and yields an empty cycle.
func parseRequest(args []string) (types.FetchRequest, error) {
	req := types.FetchRequest{Keyword: strings.TrimSpace(args[0])}
	if !req.HasKeyword() {
		return req, fmt.Errorf("%w: keyword is empty", digest.ErrInvalidRequest)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return req, fmt.Errorf("%w: count %q is not an integer", digest.ErrInvalidRequest, args[1])
	}
	if n < 0 {
		return req, fmt.Errorf("%w: count must not be negative, got %d", digest.ErrInvalidRequest, n)
	}
	req.TargetCount = n
	return req, nil
}

// cycle is one fully configured fetch-commit-report pass.
type cycle struct {
	runner   *digest.Runner
	renderer report.Renderer
	cfg      types.DigestConfig
	log      zerolog.Logger
}

// newCycle validates cfg and wires the catalog, fetcher, and history store.
// Configuration errors surface here, before any network or disk access.
func newCycle(cfg types.DigestConfig, dryRun bool, log zerolog.Logger) (*cycle, error) {
	renderer, err := report.New(cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	cat := catalog.NewArxivCatalog(client, cfg.HTTP, log)

	fetcher, err := fetch.New(cfg.Fetch, cat, log)
	if err != nil {
		return nil, err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, err
	}

	return &cycle{
		runner: &digest.Runner{
			Store:   store,
			Fetcher: fetcher,
			Log:     log,
			DryRun:  dryRun,
		},
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// reportPath returns the configured output path or papers.<ext>.
func (c *cycle) reportPath() string {
	if c.cfg.Report.Output != "" {
		return c.cfg.Report.Output
	}
	return report.DefaultPath(c.renderer)
}

// run executes the cycle and writes the report to path. The report is
// rendered only after the history commit succeeded, so a failed fetch
// leaves neither a report nor a modified history. It returns the path
// written, or "" when nothing was requested.
func (c *cycle) run(ctx context.Context, req types.FetchRequest, path string) (digest.Result, string, error) {
	log := c.log.With().Str("run_id", uuid.NewString()).Logger()
	c.runner.Log = log

	res, err := c.runner.Run(ctx, req)
	if err != nil {
		return res, "", err
	}
	if req.TargetCount <= 0 {
		return res, "", nil
	}

	rep := report.Report{
		Title:       c.cfg.Report.Title,
		Keyword:     req.Keyword,
		GeneratedAt: time.Now().UTC(),
		Requested:   req.TargetCount,
		Items:       res.Items,
	}
	if err := report.WriteFile(path, c.renderer, rep); err != nil {
		// History is already committed; the papers count as delivered.
		return res, "", fmt.Errorf("writing report %s: %w", path, err)
	}

	log.Info().
		Str("report", path).
		Int("papers", len(res.Items)).
		Bool("committed", res.Committed).
		Msg("report written")
	return res, path, nil
}
