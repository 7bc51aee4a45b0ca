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

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's meals, drinks, and exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			now := time.Now()

			entries, err := service.TodayEntries(ctx, store, loc, now)
			if err != nil {
				return err
			}
			exercises, err := service.TodayExercises(ctx, store, loc, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today (%s)\n\n", now.In(loc).Format("2006-01-02"))

			intake := 0
			fmt.Fprintln(out, "Meals & drinks:")
			if len(entries) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, e := range entries {
				if e.Calories != nil {
					intake += *e.Calories
					fmt.Fprintf(out, "  %s  %-5s %s (%d kcal)\n", e.Timestamp.In(loc).Format("15:04"), e.Kind, e.Description, *e.Calories)
				} else {
					fmt.Fprintf(out, "  %s  %-5s %s (kcal unknown)\n", e.Timestamp.In(loc).Format("15:04"), e.Kind, e.Description)
				}
			}

			burned := 0
			fmt.Fprintln(out, "Exercise:")
			if len(exercises) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, e := range exercises {
				if e.CaloriesBurned != nil {
					burned += *e.CaloriesBurned
					fmt.Fprintf(out, "  %s  %s, %.1f min (%d kcal)\n", e.Timestamp.In(loc).Format("15:04"), e.Description, e.DurationMinutes, *e.CaloriesBurned)
				} else {
					fmt.Fprintf(out, "  %s  %s, %.1f min (kcal unknown)\n", e.Timestamp.In(loc).Format("15:04"), e.Description, e.DurationMinutes)
				}
			}

			fmt.Fprintf(out, "\nIntake: %d kcal  Burned: %d kcal  Net: %d kcal\n", intake, burned, intake-burned)

			current, err := service.CurrentFast(ctx, store)
			if err != nil {
				return err
			}
			if current != nil {
				fmt.Fprintf(out, "Fasting for %.1f hours\n", time.Since(current.StartTime).Hours())
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
