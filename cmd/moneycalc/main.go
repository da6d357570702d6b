package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ledgerkit/money/internal/config"
	"github.com/ledgerkit/money/internal/logger"
	"go.uber.org/zap"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain parses flags, loads configuration and runs a single command.
// It returns the process exit status.
func realMain(args []string, stdout, stderr io.Writer) int {
	var (
		configPath string
		rounding   string
		logLevel   string
	)

	fs := flag.NewFlagSet("moneycalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", ".", "Directory containing moneycalc.toml (empty: built-in defaults only)")
	fs.StringVar(&rounding, "rounding", "", "Rounding mode (overrides config)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		printUsage(fs)
		return 1
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "moneycalc: failed to load configuration: %v\n", err)
		return 1
	}
	if rounding != "" {
		if err := cfg.SetRounding(rounding); err != nil {
			fmt.Fprintf(stderr, "moneycalc: %v\n", err)
			return 1
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "moneycalc: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(fs.Args(), stdout, log, cfg); err != nil {
		log.Error("Command failed", zap.String("command", fs.Arg(0)), zap.Error(err))
		fmt.Fprintf(stderr, "moneycalc: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads moneycalc.toml and MONEYCALC_* variables, or returns the
// built-in defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the logger, sending stderr output to the given writer.
func newLogger(cfg *config.Config, stderr io.Writer) (*zap.Logger, error) {
	lc := cfg.Logger()
	if lc.Output == "stderr" {
		return logger.NewWithWriter(lc, stderr)
	}
	return logger.New(lc)
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Usage: moneycalc [flags] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Amounts are written as \"USD 10.00\" or as a bare number in the default currency.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-6s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}
