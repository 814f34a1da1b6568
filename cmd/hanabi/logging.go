package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// setupLogger configures zerolog with console output on stderr
func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerminal(os.Stderr)}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setupTranscriptLogger returns the logger game transcripts are printed with
func setupTranscriptLogger(debug, noColor bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stdout, log.Options{Level: level})
	if noColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// renderer returns a lipgloss renderer for stdout, without colour when asked
// or when stdout is not a terminal
func renderer(noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func colorProfile(noColor bool) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}

// isTerminal reports whether f can show colour
func isTerminal(f *os.File) bool {
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}
