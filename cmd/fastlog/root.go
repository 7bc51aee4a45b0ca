package fastlog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	storageFlag string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fastlog",
	Short: "fastlog tracks intermittent fasts, meals, and exercise from your terminal",
	Long: "fastlog is a personal intermittent-fasting and nutrition log. It tracks fast\n" +
		"sessions, meals, drinks, exercise, and weight, storing records in local JSON\n" +
		"files or a hosted Postgres database.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend override: local or remote")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory for local JSON data files")
}
