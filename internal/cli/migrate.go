package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ava/internal/config"
	"ava/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the knowledge base into another store driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !store.Exists(cfg.Store) {
				return fmt.Errorf("migrate: no %s store to copy from", cfg.Store.Driver)
			}
			src, err := store.Open(cfg.Store)
			if err != nil {
				return err
			}
			defer src.Close()
			if to == cfg.Store.Driver {
				return fmt.Errorf("migrate: store is already %s", to)
			}
			if to != config.StoreYAML && to != config.StoreSQLite {
				return fmt.Errorf("migrate: --to must be yaml or sqlite, got %q", to)
			}
			dstCfg := cfg.Store
			dstCfg.Driver = to
			dst, err := store.Open(dstCfg)
			if err != nil {
				return err
			}
			defer dst.Close()
			base, err := store.Copy(cmd.Context(), dst, src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %d questions and %d answers from %s to %s\n",
				len(base.Questions), len(base.Answers), cfg.Store.Driver, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", config.StoreSQLite, "destination driver: yaml or sqlite")
	return cmd
}
