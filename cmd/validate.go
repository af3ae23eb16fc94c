package cmd

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file without generating data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				var merr *multierror.Error
				if errors.As(err, &merr) {
					for _, e := range merr.Errors {
						fmt.Fprintln(cmd.OutOrStdout(), "  -", e)
					}
					return fmt.Errorf("configuration has %d problem(s)", len(merr.Errors))
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "configuration is valid\n")
			fmt.Fprintf(out, "  period:   %s to %s\n", cfg.DataGeneration.StartDate, cfg.DataGeneration.EndDate)
			fmt.Fprintf(out, "  seed:     %d\n", cfg.DataGeneration.Seed)
			fmt.Fprintf(out, "  menu:     %d items in %d categories\n", len(cfg.Menu.Items), len(cfg.Menu.Categories))
			fmt.Fprintf(out, "  patterns: %d\n", len(cfg.Customers.BehavioralPatterns))
			fmt.Fprintf(out, "  formats:  %v\n", cfg.Output.Formats)
			return nil
		},
	}
}
