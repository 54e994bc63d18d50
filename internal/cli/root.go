// Package cli implements avactl, the offline inspection tool for an ava
// knowledge base.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"ava/internal/config"
	"ava/internal/knowledge"
	"ava/internal/store"
)

var flagConfig string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "avactl",
		Short:         "Inspect and maintain the ava knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "./config/ava.yaml", "path to config file")

	cmd.AddCommand(newQuestionsCmd())
	cmd.AddCommand(newAnswersCmd())
	cmd.AddCommand(newNextCmd())
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newLogsCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig uses built-in defaults when the config file does not exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	return nil, err
}

// loadKnowledge reads the configured store without creating it. A store that
// does not exist yet reads as an empty base.
func loadKnowledge(ctx context.Context) (*config.Config, *knowledge.Base, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !store.Exists(cfg.Store) {
		return cfg, knowledge.New(), nil
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()
	base, err := st.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, base, nil
}
