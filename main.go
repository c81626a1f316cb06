package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckgen/config"
	"deckgen/logger"
)

// app carries the wiring shared by all commands.
type app struct {
	cfg config.Config
	log *logger.Logger

	configPath string
	enableLog  bool
	verbose    bool
}

// logf writes to the log file and, when verbose, to stderr.
func (a *app) logf(message string) {
	if a.log != nil {
		a.log.Log(message)
	}
	if a.verbose {
		fmt.Fprintln(os.Stderr, message)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return WrapOperationError("load config", err)
	}

	if a.enableLog {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		a.log = logger.NewLogger()
		if err := a.log.Init(dir); err != nil {
			return WrapOperationError("initialize logging", err)
		}
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.log != nil {
		a.log.Close()
	}
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "deckgen",
		Short:         "Compile pptx slide decks from structured content",
		Long:          "deckgen compiles PowerPoint decks from YAML manifests: text, charts, tables and images placed into template-declared placeholders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&a.enableLog, "log", false, "write a log file to the config dir")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "echo log lines to stderr")

	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newLayoutsCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "deckgen: %v\n", err)
		os.Exit(1)
	}
}
