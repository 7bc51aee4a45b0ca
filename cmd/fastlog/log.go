package fastlog

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/estimate"
	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log meals and drinks",
}

var (
	logSize     string
	logCalories int
	logAt       string
)

var logMealCmd = &cobra.Command{
	Use:   "meal <description>",
	Short: "Log a meal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogIntake(cmd, args, model.KindMeal)
	},
}

var logDrinkCmd = &cobra.Command{
	Use:   "drink <description>",
	Short: "Log a drink",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogIntake(cmd, args, model.KindDrink)
	},
}

func runLogIntake(cmd *cobra.Command, args []string, kind model.EntryKind) error {
	description := strings.Join(args, " ")
	at, err := parseAt(logAt)
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
		size := ""
		if logSize != "" {
			// Drinks are sized by volume, meals by weight. The size only
			// feeds the calorie estimate; it is not persisted.
			sizeKind := service.SizeWeight
			if kind == model.KindDrink {
				sizeKind = service.SizeVolume
			}
			parsed, err := service.ParseSize(logSize, sizeKind, unitSystem(cfg))
			if err != nil {
				return err
			}
			size = parsed.String()
		}

		calories := estimateIntake(ctx, cmd, cfg, kind, description, size)
		entry, err := service.LogIntake(ctx, store, kind, description, calories, at)
		if err != nil {
			return err
		}
		if entry.Calories != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %s (%d kcal)\n", kind, entry.Description, *entry.Calories)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %s (calories unknown)\n", kind, entry.Description)
		}
		return nil
	})
}

// estimateIntake resolves the calorie value for a meal or drink: an
// explicit --calories wins; otherwise Gemini estimates when a key is
// configured, falling back to the documented constants on failure; with
// no key the calories stay unknown.
func estimateIntake(ctx context.Context, cmd *cobra.Command, cfg *config.Config, kind model.EntryKind, description, size string) *int {
	if cmd.Flags().Changed("calories") {
		v := logCalories
		return &v
	}
	if cfg.APIKey() == "" {
		return nil
	}

	fallback := estimate.FallbackMealCalories
	if kind == model.KindDrink {
		fallback = estimate.FallbackDrinkCalories
	}
	est, err := estimate.NewGemini(ctx, cfg.APIKey())
	if err == nil {
		var v int
		v, err = est.MealCalories(ctx, description, size)
		if err == nil {
			return &v
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "calorie estimate unavailable (%v), using default %d kcal\n", err, fallback)
	return &fallback
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logMealCmd, logDrinkCmd)

	for _, c := range []*cobra.Command{logMealCmd, logDrinkCmd} {
		c.Flags().StringVar(&logSize, "size", "", "Portion size, e.g. \"250ml\" or \"150g\" (bare numbers take the configured system's small unit)")
		c.Flags().IntVar(&logCalories, "calories", 0, "Calories (skips estimation)")
		c.Flags().StringVar(&logAt, "at", "", "Explicit time: \"YYYY-MM-DD HH:MM\" or \"HH:MM\" (today)")
	}
}
