package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("invalid verbosity %q: %w", s, err)
	}

	return lvl, nil
}

// newLogger logs to stderr, coloured on terminals, or to a rotated file.
func newLogger(cfg *Config) (*slog.Logger, func() error, error) {
	lvl, err := parseLevel(cfg.Verbosity)
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    16, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
		return slog.New(newHandler(file, lvl, false)), file.Close, nil
	}

	output := io.Writer(os.Stderr)
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	if usecolor {
		output = colorable.NewColorableStderr()
	}

	return slog.New(newHandler(output, lvl, usecolor)), func() error { return nil }, nil
}

func newHandler(w io.Writer, lvl slog.Level, usecolor bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	if usecolor {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) != 0 {
				return a
			}
			if l, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(levelColor(l).Sprint(l.String()))
			}
			return a
		}
	}

	return slog.NewTextHandler(w, opts)
}

func levelColor(l slog.Level) *color.Color {
	var c *color.Color
	switch {
	case l >= slog.LevelError:
		c = color.New(color.FgRed)
	case l >= slog.LevelWarn:
		c = color.New(color.FgYellow)
	case l >= slog.LevelInfo:
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgCyan)
	}
	// The terminal check already happened on stderr; fatih/color only looks at stdout.
	c.EnableColor()

	return c
}
