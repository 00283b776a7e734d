// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	for _, spec := range []string{"0 8 * * *", "@daily", "@every 6h", "*/15 * * * 1-5"} {
		assert.NoError(t, Validate(spec), spec)
	}
	for _, spec := range []string{"", "every day", "61 * * * *", "* * * *"} {
		assert.Error(t, Validate(spec), spec)
	}
}

func TestRunRejectsInvalidSpec(t *testing.T) {
	called := false
	err := Run(context.Background(), "nonsense", func(context.Context) error {
		called = true
		return nil
	}, Options{}, zerolog.Nop())
	require.Error(t, err)
	assert.False(t, called)
}

func TestRunImmediatelyThenStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	job := func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, "@daily", job, Options{RunImmediately: true}, zerolog.Nop()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRunLogsJobErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(zerolog.SyncWriter(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	job := func(context.Context) error {
		defer cancel()
		return errors.New("catalog unreachable")
	}

	require.NoError(t, Run(ctx, "@daily", job, Options{RunImmediately: true}, log))
	assert.Contains(t, buf.String(), "scheduled cycle failed")
	assert.Contains(t, buf.String(), "catalog unreachable")
}

func TestRunSkipsJobWhenContextAlreadyDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := Run(ctx, "@daily", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}, Options{RunImmediately: true}, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	l := cronLogger{log: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	l.Info("skip", "entry", 3)
	l.Error(errors.New("boom"), "panic", "job", "digest")

	out := buf.String()
	assert.Contains(t, out, `"message":"cron: skip"`)
	assert.Contains(t, out, `"entry":3`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"job":"digest"`)
}
