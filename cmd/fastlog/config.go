package fastlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  fmt.Sprintf("Set a configuration value. Known keys: %v", config.Keys()),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		value, ok, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, key := range config.Keys() {
			value, ok, err := cfg.Get(key)
			if err != nil {
				return err
			}
			if !ok {
				value = "(not set)"
			} else if key == "remote.credential" || key == "gemini_api_key" {
				value = "(set)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		}
		mode, err := cfg.StorageMode()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "resolved storage mode = %s\n", mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
}
