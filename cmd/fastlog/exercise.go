package fastlog

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/estimate"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

var (
	exerciseMinutes  float64
	exerciseCalories int
	exerciseAt       string
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise <description>",
	Short: "Log exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.Join(args, " ")
		at, err := parseAt(exerciseAt)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			burned := estimateExercise(ctx, cmd, cfg, description, exerciseMinutes)
			entry, err := service.LogExercise(ctx, store, description, exerciseMinutes, burned, at)
			if err != nil {
				return err
			}
			if entry.CaloriesBurned != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise: %s, %.1f min (%d kcal burned)\n",
					entry.Description, entry.DurationMinutes, *entry.CaloriesBurned)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise: %s, %.1f min (calories unknown)\n",
					entry.Description, entry.DurationMinutes)
			}
			return nil
		})
	},
}

func estimateExercise(ctx context.Context, cmd *cobra.Command, cfg *config.Config, description string, minutes float64) *int {
	if cmd.Flags().Changed("calories") {
		v := exerciseCalories
		return &v
	}
	if cfg.APIKey() == "" {
		return nil
	}

	fallback := int(math.Round(minutes * estimate.FallbackExerciseCaloriesPerMinute))
	est, err := estimate.NewGemini(ctx, cfg.APIKey())
	if err == nil {
		var v int
		v, err = est.ExerciseCalories(ctx, description, minutes)
		if err == nil {
			return &v
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "burn estimate unavailable (%v), using default %d kcal\n", err, fallback)
	return &fallback
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.Flags().Float64Var(&exerciseMinutes, "minutes", 0, "Duration in minutes")
	exerciseCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "Calories burned (skips estimation)")
	exerciseCmd.Flags().StringVar(&exerciseAt, "at", "", "Explicit time: \"YYYY-MM-DD HH:MM\" or \"HH:MM\" (today)")
	_ = exerciseCmd.MarkFlagRequired("minutes")
}
