// hctm manages HexChat themes: it lists installed themes, activates one by
// copying its configuration files into the HexChat config directory,
// installs themes from .hct/.zip archives and removes them.
//
// Usage:
//
//	hctm [flags]
//
// Flags:
//
//	-u, -use THEME      Use the specified theme
//	-r, -remove THEME   Remove the specified theme completely
//	-i, -install FILE   Install a new theme (.hct or .zip file)
//	-y, -yes            Answer yes to every confirmation
//	-lenient            Install archives with corrupt entries, skipping them
//	-config string      Path to configuration file (default: ~/.config/hctm/config.toml)
//	-verbose            Enable verbose logging
//	-version            Print version and exit
//
// Without an action flag the installed themes are listed.
//
// Exit status: 0 success, 1 failure, 2 usage, 3 theme not found,
// 4 HexChat running, 5 confirmation declined, 6 bad archive.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/tinyland/lab/hctm/pkg/config"
	"gitlab.com/tinyland/lab/hctm/pkg/manager"
	"gitlab.com/tinyland/lab/hctm/pkg/process"
	"gitlab.com/tinyland/lab/hctm/pkg/prompt"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// actionFlags are the mutually exclusive action flags, long and short.
var actionFlags = map[string]string{
	"u": "use", "use": "use",
	"r": "remove", "remove": "remove",
	"i": "install", "install": "install",
}

func run(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hctm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		useTheme    string
		removeTheme string
		installFile string
		assumeYes   bool
	)
	fs.StringVar(&useTheme, "u", "", "Use the specified `THEME`")
	fs.StringVar(&useTheme, "use", "", "Use the specified `THEME`")
	fs.StringVar(&removeTheme, "r", "", "Remove the specified `THEME` completely")
	fs.StringVar(&removeTheme, "remove", "", "Remove the specified `THEME` completely")
	fs.StringVar(&installFile, "i", "", "Install a new theme (.hct or .zip `FILE`)")
	fs.StringVar(&installFile, "install", "", "Install a new theme (.hct or .zip `FILE`)")
	fs.BoolVar(&assumeYes, "y", false, "Answer yes to every confirmation")
	fs.BoolVar(&assumeYes, "yes", false, "Answer yes to every confirmation")
	var (
		lenient     = fs.Bool("lenient", false, "Install archives with corrupt entries, skipping them")
		configPath  = fs.String("config", "", "Path to configuration file")
		verbose     = fs.Bool("verbose", false, "Enable verbose logging")
		showVersion = fs.Bool("version", false, "Print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return manager.ExitOK
		}
		return manager.ExitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "hctm %s (%s) built %s\n", version, commit, date)
		return manager.ExitOK
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return manager.ExitUsage
	}

	actions := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		if a, ok := actionFlags[f.Name]; ok {
			actions[a] = true
		}
	})
	if len(actions) > 1 {
		fmt.Fprintln(stderr, "only one of -u/--use, -r/--remove, -i/--install may be given")
		return manager.ExitUsage
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load(*configPath, config.Overrides{
		AssumeYes:      assumeYes,
		LenientArchive: *lenient,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return manager.ExitUsage
	}
	logger.Debug("configuration loaded",
		"config_dir", cfg.ConfigDir,
		"themes_dir", cfg.ThemesDir,
		"process_source", cfg.ProcessSource,
	)

	lister, err := process.NewLister(cfg.ProcessSource)
	if err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return manager.ExitUsage
	}

	m := manager.New(cfg, manager.Options{
		Probe:   process.NewInspector(lister, cfg.Client),
		Confirm: prompt.ForTerminal(cfg.AssumeYes, stdin, stdout),
		Out:     stdout,
		Logger:  logger,
	})

	switch {
	case actions["install"]:
		err = m.Install(ctx, installFile)
	case actions["use"]:
		err = m.Use(ctx, useTheme)
	case actions["remove"]:
		err = m.Remove(ctx, removeTheme)
	default:
		err = m.Show(ctx)
	}

	code := manager.ExitCode(err)
	switch {
	case err == nil:
	case code == manager.ExitFailure || code == manager.ExitIntegrity:
		logger.Error("action failed", "error", err)
	default:
		logger.Debug("action stopped", "error", err, "exit_code", code)
	}
	return code
}
