package fastlog

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

var weightAt string

var weightCmd = &cobra.Command{
	Use:   "weight <value[unit]>",
	Short: "Log a body weight",
	Long: "Log a body weight, e.g. \"fastlog weight 82.5kg\" or \"fastlog weight 180\".\n" +
		"Bare numbers take the configured system's small unit; values are stored in\n" +
		"the configured unit system.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(weightAt)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			system := unitSystem(cfg)
			parsed, err := service.ParseSize(args[0], service.SizeWeight, system)
			if err != nil {
				return err
			}
			stored, err := service.ConvertToPreferredSystem(parsed, system)
			if err != nil {
				return err
			}
			entry, err := service.LogWeight(ctx, store, stored.Value, at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged weight: %g %s\n", entry.Weight, stored.Unit)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			weights, err := store.LoadWeights(ctx)
			if err != nil {
				return err
			}
			if len(weights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries")
				return nil
			}
			sort.Slice(weights, func(i, j int) bool {
				return weights[i].Timestamp.Before(weights[j].Timestamp)
			})
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT")
			for _, w := range weights {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\n", w.Timestamp.Local().Format("2006-01-02 15:04"), w.Weight)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.Flags().StringVar(&weightAt, "at", "", "Explicit time: \"YYYY-MM-DD HH:MM\" or \"HH:MM\" (today)")
}
