// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule repeats the digest cycle on a cron expression. Cycles
// never overlap: a tick that arrives while the previous cycle is still
// running is skipped.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one cycle. Its error is logged; the schedule keeps running.
type Job func(ctx context.Context) error

// Options tune Run.
type Options struct {
	// RunImmediately fires the job once before waiting for the first tick.
	RunImmediately bool
}

// Validate reports whether spec is a standard five-field cron expression
// or a descriptor such as "@daily" or "@every 6h".
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Run executes job on spec until ctx is cancelled, then waits for any
// running cycle to finish.
func Run(ctx context.Context, spec string, job Job, opts Options, log zerolog.Logger) error {
	if err := Validate(spec); err != nil {
		return err
	}

	clog := cronLogger{log: log}
	c := cron.New(cron.WithLogger(clog))

	// The immediate run and the ticks share one wrapped job, so
	// SkipIfStillRunning covers both.
	wrapped := cron.NewChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)).
		Then(cron.FuncJob(func() { runOnce(ctx, job, log) }))

	if _, err := c.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("scheduling job: %w", err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Time("next", nextRun(c)).Msg("scheduler started")

	var immediate sync.WaitGroup
	if opts.RunImmediately {
		immediate.Add(1)
		go func() {
			defer immediate.Done()
			wrapped.Run()
		}()
	}

	<-ctx.Done()
	log.Info().Msg("scheduler stopping")
	<-c.Stop().Done()
	immediate.Wait()
	return nil
}

func runOnce(ctx context.Context, job Job, log zerolog.Logger) {
	if ctx.Err() != nil {
		return
	}
	if err := job(ctx); err != nil {
		log.Error().Err(err).Msg("scheduled cycle failed")
	}
}

// nextRun returns the earliest scheduled activation.
func nextRun(c *cron.Cron) time.Time {
	var next time.Time
	for _, e := range c.Entries() {
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
