// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the zerolog logger used by the CLI surface. The
// conversion engine itself never logs; it reports through writers and return
// values, and the CLI decides what to say about it.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr, tagged with a role field (e.g.
// "convert", "inspect"). level is a zerolog level name; unknown names fall
// back to info. When json is false, output is human-readable console format.
func New(role, level string, json bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if !json {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Logger()
}
