package fastlog

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare the configured storage backend",
	Long: "Prepare the configured storage backend: creates the local data directory,\n" +
		"or applies the remote schema migrations when storage resolves to remote.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := cfg.StorageMode()
		if err != nil {
			return err
		}
		if mode == config.ModeRemote {
			if err := storage.MigrateRemote(cfg.RemoteEndpoint(), cfg.RemoteCredential()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Remote storage ready")
			return nil
		}
		dir, err := localDataDir()
		if err != nil {
			return err
		}
		if _, err := storage.NewLocal(dir, slog.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Local storage ready at %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
