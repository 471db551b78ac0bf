package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/flipbook/internal/config"
	"github.com/phanxgames/flipbook/internal/logger"
)

type rootFlags struct {
	configPath string
	logLevel   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "flipbook",
		Short:         "A scroll- and drag-driven page-flip book",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, open the window.
			return runWindow(cmd, flags, &runOptions{page: -1})
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable per-frame debug logging")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newInspectCmd(flags))
	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file named by --config, or the defaults.
func loadConfig(command string, flags *rootFlags) (*config.File, error) {
	if flags.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(command, "loading config", err, "Fix the reported field or run without --config to use the defaults.")
	}
	return cfg, nil
}

// newLogger builds the command logger. It writes to the command's stderr so
// tests can capture it.
func newLogger(cmd *cobra.Command, command string, flags *rootFlags, cfg *config.File) (*logger.Logger, error) {
	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.debug || cfg.Log.Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, newCommandError(command, "creating logger", err, "Use one of trace, debug, info, warn or error for --log-level.")
	}
	return log.WithFields(map[string]any{"command": command}), nil
}
