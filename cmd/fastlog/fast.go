package fastlog

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

var fastCmd = &cobra.Command{
	Use:   "fast",
	Short: "Manage fast sessions",
}

var fastAt string

var fastStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a fast",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(fastAt)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			start, err := service.StartFast(ctx, store, at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fast started at %s\n", start.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var fastEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active fast",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseAt(fastAt)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			done, err := service.EndFast(ctx, store, at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fast ended after %.1f hours (started %s)\n",
				*done.DurationHours, done.StartTime.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var fastStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active fast",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			current, err := service.CurrentFast(ctx, store)
			if err != nil {
				return err
			}
			if current == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No fast in progress")
				return nil
			}
			elapsed := time.Since(current.StartTime).Hours()
			fmt.Fprintf(cmd.OutOrStdout(), "Fasting for %.1f hours (started %s)\n",
				elapsed, current.StartTime.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var fastHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed fasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			history, err := service.FastHistory(ctx, store)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed fasts")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "STARTED\tENDED\tHOURS")
			for _, f := range history {
				hours := ""
				if f.DurationHours != nil {
					hours = fmt.Sprintf("%.1f", *f.DurationHours)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					f.StartTime.Local().Format("2006-01-02 15:04"),
					f.EndTime.Local().Format("2006-01-02 15:04"),
					hours)
			}
			return nil
		})
	},
}

var fastStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize completed fasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			stats, err := service.FastStats(ctx, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed fasts: %d\n", stats.Count)
			fmt.Fprintf(cmd.OutOrStdout(), "Average: %.1f h\n", stats.AverageHours)
			fmt.Fprintf(cmd.OutOrStdout(), "Longest: %.1f h\n", stats.MaxHours)
			fmt.Fprintf(cmd.OutOrStdout(), "Shortest: %.1f h\n", stats.MinHours)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fastCmd)
	fastCmd.AddCommand(fastStartCmd, fastEndCmd, fastStatusCmd, fastHistoryCmd, fastStatsCmd)

	for _, c := range []*cobra.Command{fastStartCmd, fastEndCmd} {
		c.Flags().StringVar(&fastAt, "at", "", "Explicit time: \"YYYY-MM-DD HH:MM\" or \"HH:MM\" (today)")
	}
}
