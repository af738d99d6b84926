// Package logging configures the zerolog logger shared by the CLI and
// the distributed master/client. The pure core packages (alphabet, rotor,
// reflector, plugboard, enigma, config, expander, search, reflectorperm)
// never log; only the outer collaborators — the CLI and the distributed
// transport — report through this logger.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-formatted zerolog.Logger writing to w at the
// given level. verbose raises the level to debug regardless of level.
func New(w io.Writer, level zerolog.Level, verbose bool) zerolog.Logger {
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Default builds a logger writing to stderr at info level, for commands
// that don't parse a verbosity flag.
func Default() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel, false)
}
