package fastlog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/storage"
)

var clearAll bool

var clearCmd = &cobra.Command{
	Use:   "clear [collection]",
	Short: "Delete all records in a collection (fasts, entries, weights, exercises)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if clearAll == (len(args) == 1) {
			return fmt.Errorf("pass exactly one of a collection name or --all")
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store storage.Store) error {
			if clearAll {
				if err := store.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared all collections")
				return nil
			}
			c := storage.Collection(args[0])
			known := false
			for _, k := range storage.Collections {
				if c == k {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("unknown collection %q (expected one of %v)", args[0], storage.Collections)
			}
			if err := store.Clear(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", c)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Clear every collection")
}
