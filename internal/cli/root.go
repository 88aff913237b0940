// Package cli implements nala's command-line interface.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/config"
	"github.com/rantnar/nala/internal/executor"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

// Version information, set at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// Global flags.
var (
	configPath    string
	assumeYes     bool
	dryRun        bool
	verbose       bool
	debugMode     bool
	noColor       bool
	engineOptions []string
)

// Shared state wired up in initializeApp.
var (
	cfg    *config.Config
	execr  *executor.Executor
	engine apt.Engine
)

var rootCmd = &cobra.Command{
	Use:   "nala",
	Short: "A prettier front-end for the APT package manager",
	Long: `Nala is a front-end for APT. It wraps the engine's tools with
readable output, transaction summaries, glob and virtual package
resolution, and a history journal with undo.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/nala/config.toml)")
	pf.BoolVarP(&assumeYes, "assume-yes", "y", false, "answer yes to all prompts")
	pf.BoolVarP(&dryRun, "dry-run", "n", false, "print engine commands without applying changes")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print every engine command before running it")
	pf.BoolVar(&debugMode, "debug", false, "write debug logs to the nala log file")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringSliceVarP(&engineOptions, "option", "o", nil, "set an engine option (Key=Value), repeatable")
}

// initializeApp loads the configuration, applies flag overrides and wires
// the executor and engine every command shares.
func initializeApp() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if assumeYes {
		cfg.General.AssumeYes = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)
	setupLogging()

	execr = executor.New(cfg.General.DryRun, cfg.Output.Verbose)
	system := apt.NewSystem(execr)
	system.SetOptions(append(cfg.Apt.Options, engineOptions...))
	engine = system
	return nil
}

// setupLogging routes debug logs to the log file when --debug is set and
// silences them otherwise.
func setupLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	if !debugMode {
		logrus.SetLevel(logrus.WarnLevel)
		logrus.SetOutput(os.Stderr)
		return
	}

	logrus.SetLevel(logrus.DebugLevel)
	if err := config.EnsureDataDir(); err == nil {
		f, ferr := os.OpenFile(config.DebugLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if ferr == nil {
			logrus.SetOutput(io.MultiWriter(os.Stderr, f))
			return
		}
	}
	logrus.SetOutput(os.Stderr)
}

// Execute runs the root command and reports errors to the terminal. The
// caller decides the exit code from the returned error.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrAborted):
		ui.MutedMsg("Abort.")
	default:
		var broken *apt.BrokenError
		if errors.As(err, &broken) {
			ui.PrintBroken(broken)
		} else {
			ui.ErrorMsg("%v", err)
		}
	}
	return err
}
