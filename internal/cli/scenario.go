package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/market-sim/internal/scenario"
)

func newScenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Create and check scenario files",
		Long: `A scenario file describes the market, its demand curve, a set of default
firm parameters and the firms that compete, each overriding the defaults.

Examples:
  marketsim scenario init scenario.yaml
  marketsim scenario validate scenario.yaml`,
	}

	cmd.AddCommand(newScenarioInitCommand())
	cmd.AddCommand(newScenarioValidateCommand())

	return cmd
}

func newScenarioInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in scenario to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenario.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := scenario.Save(path, scenario.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func newScenarioValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that every firm in a scenario can be built",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			m, rejected := doc.Build()
			for _, f := range m.Firms {
				fmt.Fprintf(out, "ok    %s (%s, capital %s)\n", f.Name, f.Strategy, money(f.Capital))
			}
			for _, r := range rejected {
				fmt.Fprintf(out, "FAIL  %s: %v\n", r.Name, r.Err)
			}

			if len(rejected) > 0 {
				return fmt.Errorf("%d of %d firms invalid", len(rejected), len(doc.Firms))
			}
			if len(m.Firms) == 0 {
				return errors.New("scenario has no firms")
			}
			fmt.Fprintf(out, "%s: %d firms, %s market over %d periods\n",
				args[0], len(m.Firms), m.Type, m.MaxPeriods)
			return nil
		},
	}
}
