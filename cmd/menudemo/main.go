package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/padmenu/padmenu/inspect"
	"github.com/padmenu/padmenu/internal/cli"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/remote"
	"github.com/padmenu/padmenu/screen"
	"github.com/padmenu/padmenu/screenset"
)

// Config holds the demo's settings. Values come from the environment and
// can be overridden per-run with flags.
type Config struct {
	Set           string        `env:"MENUDEMO_SET" envDefault:"examples/demo/screens.hcl"`
	Screen        string        `env:"MENUDEMO_SCREEN"`
	InspectAddr   string        `env:"MENUDEMO_INSPECT_ADDR"`
	RemoteURL     string        `env:"MENUDEMO_REMOTE_URL"`
	RemoteTimeout time.Duration `env:"MENUDEMO_REMOTE_TIMEOUT" envDefault:"10s"`
	LogLevel      string        `env:"MENUDEMO_LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"MENUDEMO_LOG_FORMAT" envDefault:"text"`
	LogFile       string        `env:"MENUDEMO_LOG"`
}

// main is the entrypoint for the interactive demo.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the demo's logic for easier testing and error handling.
func run(args []string) error {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	flagSet := flag.NewFlagSet("menudemo", flag.ContinueOnError)
	flagSet.SetOutput(os.Stderr)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(os.Stderr, `
menudemo - Runs a screen set as an interactive terminal menu.

Keys:
  arrows      move focus (left/right adjust a focused slider)
  enter/space activate the focused element
  tab         cycle through the set's screens
  q / ctrl+c  quit

Options:
`)
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&cfg.Set, "set", cfg.Set, "Path to the screen set manifest.")
	flagSet.StringVar(&cfg.Screen, "screen", cfg.Screen, "Screen to enter instead of the manifest's entry screen.")
	flagSet.StringVar(&cfg.InspectAddr, "inspect-addr", cfg.InspectAddr, "Listen address for the WebSocket state inspector. Empty disables it.")
	flagSet.StringVar(&cfg.RemoteURL, "remote-url", cfg.RemoteURL, "socket.io server URL for remote input. Empty disables it.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Set the logging level (debug, info, warn, error)")
	flagSet.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Set the log output format (text or json)")
	flagSet.StringVar(&cfg.LogFile, "log", cfg.LogFile, "File to append logs to. Empty discards them; the terminal belongs to the UI.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	logLevel, logFormat, err := cli.ValidateLogFlags(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	// The alternate screen is owned by the UI loop, so logs go to a file
	// or nowhere at all.
	logW := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logW = f
	}
	logger := cli.NewLogger(logLevel, logFormat, logW)
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	set, err := screenset.Load(ctx, cfg.Set)
	if err != nil {
		return err
	}

	// Handlers need the manager for screen switching, and the manager is
	// built with the handlers. Late-bind it through a closure.
	var mgr *screen.Manager
	table := newHandlerTable(logger, func() *screen.Manager { return mgr })
	mgr, err = set.Build(ctx, table)
	if err != nil {
		return err
	}
	if cfg.Screen != "" {
		if err := mgr.Enter(cfg.Screen); err != nil {
			return err
		}
	}

	var inspector *inspect.Server
	if cfg.InspectAddr != "" {
		inspector = inspect.NewServer(logger)
		inspector.Start(cfg.InspectAddr)
		defer inspector.Close()
	}

	var bridge *remote.Bridge
	if cfg.RemoteURL != "" {
		bridge, err = remote.Dial(ctx, remote.Config{
			URL:     cfg.RemoteURL,
			Timeout: cfg.RemoteTimeout,
		})
		if err != nil {
			return err
		}
		defer bridge.Close()
	}

	program := tea.NewProgram(newAppModel(ctx, set, mgr, inspector, bridge), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui loop failed: %w", err)
	}
	return nil
}
