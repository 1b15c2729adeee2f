package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcrobe/anatomique/compiler"
	"github.com/vcrobe/anatomique/config"
	"github.com/vcrobe/anatomique/console"
)

// globalFlags are shared by every subcommand. Set flags override the
// config file.
type globalFlags struct {
	configPath string
	outDir     string
	mode       string
	logLevel   string
	strict     bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "anatomique",
		Short:         "Compile tri-AST components into reactive JavaScript modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to "+config.FileName+" (default: ./"+config.FileName+" if present)")
	pf.StringVarP(&flags.outDir, "out", "o", "", "output directory")
	pf.StringVar(&flags.mode, "mode", "", "output shape: class or function")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&flags.strict, "strict", false, "treat warnings as errors")

	root.AddCommand(newBuildCmd(flags), newWatchCmd(flags), newVersionCmd())
	return root
}

// session is everything a build needs, resolved once per command.
type session struct {
	cfg    *config.Config
	mode   compiler.Mode
	logger *slog.Logger
}

func loadSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	path := flags.configPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("out") {
		cfg.OutDir = flags.outDir
	}
	if pf.Changed("mode") {
		cfg.Mode = flags.mode
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("strict") {
		cfg.Strict = flags.strict
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	mode, err := compiler.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	logger := slog.New(console.NewWriterHandler(os.Stderr, console.ParseLevel(cfg.LogLevel)))
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return &session{cfg: cfg, mode: mode, logger: logger}, nil
}
