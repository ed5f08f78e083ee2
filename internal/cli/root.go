// Package cli provides the command-line interface for Corvo.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	corvo "github.com/TotoroEmotoro/Corvo"
	"github.com/TotoroEmotoro/Corvo/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corvo",
		Short: "Corvo - a small English-like programming language",
		Long: `Corvo is a small interpreted language with English-like syntax,
made for teaching: variables, lists, CSV tables, sections, and loops,
written the way you would say them out loud.`,
		Version: corvo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if cfg.Verbose {
				if used := config.FileUsed(); used != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./corvo.yaml)")
	rootCmd.PersistentFlags().Int("max-loops", 0, "abort any while loop after this many iterations (0 = unbounded)")
	rootCmd.PersistentFlags().String("work-dir", "", "directory that relative file paths resolve against")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newReplCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newInterpreter builds an engine from the loaded configuration.
func newInterpreter() *corvo.Interpreter {
	var opts []corvo.Option
	if cfg != nil {
		if cfg.MaxLoops > 0 {
			opts = append(opts, corvo.WithMaxLoopIterations(cfg.MaxLoops))
		}
		if cfg.WorkDir != "" {
			opts = append(opts, corvo.WithWorkDir(cfg.WorkDir))
		}
	}
	return corvo.New(opts...)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the interpreter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corvo %s\n", corvo.Version)
		},
	}
}
