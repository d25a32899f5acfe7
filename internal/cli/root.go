// Package cli implements the marketsim command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/market-sim/internal/config"
	"github.com/talgya/market-sim/internal/logging"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCommand creates the root command for the CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marketsim",
		Short: "Period-driven market simulation of competing firms",
		Long: `marketsim runs a market in which firms size their production against the
current price, sell their stock at the clearing price, and reinvest surplus
capital in capacity and efficiency.

Examples:
  marketsim run
  marketsim run --scenario scenario.yaml --periods 24
  marketsim scenario init scenario.yaml
  marketsim scenario validate scenario.yaml
  marketsim runs list --limit 5`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Logging.Level = a.logLevel
			}
			closer, err := logging.Setup(cfg.Logging)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			a.cfg, a.logCloser = cfg, closer
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to config file (default: marketsim.yaml in . or ./configs)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newScenarioCommand())
	rootCmd.AddCommand(newRunsCommand(a))

	return rootCmd
}

// execute runs cmd and then closes the log output opened for it, also when
// the command failed. Cobra skips post-run hooks after a RunE error.
func (a *app) execute(cmd *cobra.Command) error {
	defer a.close()
	return cmd.Execute()
}

func (a *app) close() {
	if a.logCloser == nil {
		return
	}
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log output: %v\n", err)
	}
	a.logCloser = nil
}

// Execute runs the root command.
func Execute() {
	a := &app{}
	if err := a.execute(newRootCommand(a)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
