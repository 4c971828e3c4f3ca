package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/padmenu/padmenu/internal/cli"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/internal/fsutil"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/mml"
	"github.com/padmenu/padmenu/nav"
	"github.com/padmenu/padmenu/screenset"
)

// main is the entrypoint for the menucheck tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the tool's logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("menucheck", flag.ContinueOnError)
	flagSet.SetOutput(outW)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(outW, `
menucheck - Compile-checks menu templates and screen set manifests.

Usage:
  menucheck [options] [PATH]

Arguments:
  PATH
    Path to a single .mml template or a directory containing .mml files.

Options:
`)
		flagSet.PrintDefaults()
	}

	setFlag := flagSet.String("set", "", "Path to a screen set manifest to check instead of bare templates.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	logLevel, logFormat, err := cli.ValidateLogFlags(*logLevelFlag, *logFormatFlag)
	if err != nil {
		return err
	}
	logger := cli.NewLogger(logLevel, logFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	path := ""
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if *setFlag != "" {
		return checkSet(ctx, outW, *setFlag)
	}
	if path == "" {
		flagSet.Usage()
		return nil
	}
	return checkTemplates(outW, path)
}

// checkTemplates compiles every template under path and reports each
// one on its own line.
func checkTemplates(outW io.Writer, path string) error {
	files, err := fsutil.FindByExt(path, ".mml")
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}
	if len(files) == 0 {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("no .mml templates under %s", path)}
	}

	failures := 0
	for _, file := range files {
		tmpl, err := mml.CompileFile(file)
		if err != nil {
			failures++
			fmt.Fprintf(outW, "error %s: %v\n", file, err)
			continue
		}
		graph := nav.Build(tmpl)
		fmt.Fprintf(outW, "ok %s (%d nodes, %d focusable)\n", file, tmpl.Len(), graph.Len())
		reportDanglingNav(outW, tmpl, graph)
	}

	if failures > 0 {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%d of %d templates failed", failures, len(files))}
	}
	return nil
}

// reportDanglingNav lists navigation hints whose target is not a
// focusable node. They are legal and inert at runtime, but in a static
// check they are almost always typos worth surfacing.
func reportDanglingNav(outW io.Writer, tmpl *menu.Template, graph *nav.Graph) {
	tmpl.Walk(func(n *menu.Node) {
		hints := []struct {
			dir    string
			target string
		}{
			{"up", n.Nav.Up},
			{"down", n.Nav.Down},
			{"left", n.Nav.Left},
			{"right", n.Nav.Right},
		}
		for _, h := range hints {
			if h.target != "" && !graph.Contains(h.target) {
				fmt.Fprintf(outW, "  warn %s: nav-%s target #%s is not a focusable node\n", nodeLabel(n), h.dir, h.target)
			}
		}
	})
}

func nodeLabel(n *menu.Node) string {
	if n.ID != "" {
		return n.Tag + "#" + n.ID
	}
	return n.Tag
}

// checkSet loads a set manifest and reports every screen in it.
func checkSet(ctx context.Context, outW io.Writer, path string) error {
	set, err := screenset.Load(ctx, path)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	failures := 0
	for _, sc := range set.Screens {
		if sc.Err != nil {
			failures++
			fmt.Fprintf(outW, "error %s (%s): %v\n", sc.Name, sc.Source, sc.Err)
			continue
		}
		graph := nav.Build(sc.Template)
		fmt.Fprintf(outW, "ok %s (%s, %d nodes, %d focusable)\n", sc.Name, sc.Source, sc.Template.Len(), graph.Len())
		reportDanglingNav(outW, sc.Template, graph)
	}
	fmt.Fprintf(outW, "entry screen: %s\n", set.Entry)

	if failures > 0 {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%d of %d screens failed", failures, len(set.Screens))}
	}
	return nil
}
