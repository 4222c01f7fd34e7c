// Package log provides leveled diagnostic logging for sarifmark.
//
// Diagnostic output is separate from the user-facing analysis output; it
// defaults to stderr at warn level and can be redirected or silenced by the
// CLI layer.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetOutput redirects all diagnostic output to w.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetVerbose lowers the level so Debugf and Infof lines are emitted.
func SetVerbose() {
	logger = logger.Level(zerolog.DebugLevel)
}

// Disable drops all diagnostic output.
func Disable() {
	logger = logger.Output(io.Discard).Level(zerolog.Disabled)
}

func Debugf(format string, v ...any) {
	logger.Debug().Msgf(format, v...)
}

func Infof(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

func Errorf(format string, v ...any) {
	logger.Error().Msgf(format, v...)
}
