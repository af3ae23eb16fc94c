package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/simulator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flag name -> config key it overrides
var configFlags = map[string]string{
	"seed":        "data_generation.seed",
	"start-date":  "data_generation.start_date",
	"end-date":    "data_generation.end_date",
	"formats":     "output.formats",
	"output-path": "output.path",
}

// NewRootCmd builds the cafedatasim command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cafedatasim",
		Short: "Generates synthetic café point-of-sale data",
		Long: `cafedatasim expands a YAML configuration into a synthetic café sales dataset
(customers, menu, orders, order items and daily summaries) with deliberately
injected data-quality defects, and exports it to files, databases or Kafka.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			quiet, _ := cmd.Flags().GetBool("quiet")
			return setupLogging(cmd.ErrOrStderr(), level, quiet)
		},
		RunE: runGenerate,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log warnings and hide the progress bar")

	// config overrides, shared with subcommands
	pf := rootCmd.PersistentFlags()
	pf.Int64("seed", 42, "random seed for the simulation")
	pf.String("start-date", "", "first simulated date (YYYY-MM-DD)")
	pf.String("end-date", "", "last simulated date (YYYY-MM-DD)")
	pf.StringSlice("formats", nil, "output formats: csv, json, xlsx, parquet, db, kafka")
	pf.String("output-path", "", "directory for file outputs")
	pf.Bool("no-noise", false, "skip data-quality noise injection")

	rootCmd.AddCommand(newValidateCmd(), newInitCmd())
	return rootCmd
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*models.Config, error) {
	v := viper.New()
	for name, key := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := models.LoadConfig(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if noNoise, _ := cmd.Flags().GetBool("no-noise"); noNoise {
		cfg.DisableNoise()
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var progress io.Writer = cmd.ErrOrStderr()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		progress = io.Discard
	}

	sim, err := simulator.NewSimulator(cfg, simulator.WithProgress(progress))
	if err != nil {
		return err
	}
	ds, err := sim.Run(cmd.Context())
	if err != nil {
		return err
	}

	counts := ds.Counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "%-14s %8d\n", name, counts[name])
	}
	log.Debug().Interface("noise", ds.Noise).Msg("done")
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
