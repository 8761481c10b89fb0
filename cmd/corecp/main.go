// Package main wires the corecp model-facing API to a cobra command tree.
// The CLI contains no solving logic of its own: every solve subcommand
// builds a model, posts constraints, and hands the work to search.Solver;
// bound heldkarp runs the engine's initial propagation only.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the shared console logger every subcommand writes through,
// grounded on the teacher pack's zerolog-console-writer idiom. Defaults
// to a no-op sink so tests that call a run* function directly, without
// going through main, never hit a nil writer.
var log = zerolog.Nop()

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	log = zerolog.New(output).With().Timestamp().Logger()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("corecp failed")
	}
}
