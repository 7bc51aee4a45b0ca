package fastlog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily calorie series",
}

var historyCaloriesCmd = &cobra.Command{
	Use:   "calories",
	Short: "Daily intake totals (bucketed by UTC date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			series, err := service.CalorieHistory(ctx, store)
			if err != nil {
				return err
			}
			printSeries(cmd, series, "KCAL")
			return nil
		})
	},
}

var historyExerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Daily burned-calorie totals (bucketed by UTC date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			series, err := service.ExerciseHistory(ctx, store)
			if err != nil {
				return err
			}
			printSeries(cmd, series, "KCAL_BURNED")
			return nil
		})
	},
}

func printSeries(cmd *cobra.Command, series []model.DailyAggregate, header string) {
	if len(series) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "DATE\t%s\n", header)
	for _, day := range series {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", day.Date, day.Total)
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyCaloriesCmd, historyExerciseCmd)
}
