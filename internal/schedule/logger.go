// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"github.com/rs/zerolog"
)

// cronLogger adapts zerolog to cron.Logger. cron's Info messages are
// routine scheduling chatter and go to debug.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
