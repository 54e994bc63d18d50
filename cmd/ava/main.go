package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"time"

	"ava/internal/config"
	"ava/internal/dialogue"
	"ava/internal/logging"
	"ava/internal/policy"
	"ava/internal/sessions"
	"ava/internal/store"
	"ava/internal/tokenize"
)

const defaultConfigPath = "./config/ava.yaml"

func main() {
	var (
		configPath string
		checkOnly  bool
		seed       int64
	)

	flag.StringVar(&configPath, "config", defaultConfigPath, "path to config file")
	flag.BoolVar(&checkOnly, "check", false, "validate config and exit")
	flag.Int64Var(&seed, "seed", 0, "random seed for answer selection (0 = time based)")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureRuntimeDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "runtime dirs error: %v\n", err)
		os.Exit(1)
	}

	if checkOnly {
		fmt.Println("config ok")
		return
	}

	if cfg.Log.File != "" {
		if err := logging.SetFile(cfg.Log.File); err != nil {
			fmt.Fprintf(os.Stderr, "log setup error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "log setup error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New("ava")

	if err := run(cfg, seed, logger); err != nil {
		logger.Error("session failed", map[string]string{"error": err.Error()})
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig falls back to defaults only when the default config file is
// missing; an explicit -config path must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	return nil, err
}

func run(cfg *config.Config, seed int64, logger *logging.Logger) error {
	ctx := context.Background()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	base, err := st.Load(ctx)
	if err != nil {
		return err
	}

	tok, err := tokenize.ByName(cfg.Match.Tokenizer)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var recorders []dialogue.Recorder
	if cfg.Transcript.Enabled {
		transcript, err := sessions.NewStore(cfg.Transcript.Dir)
		if err != nil {
			return err
		}
		recorders = append(recorders, transcript)
		if db, ok := st.(*store.SQLite); ok {
			recorders = append(recorders, db.DB())
		}
	}

	session, err := dialogue.New(base, dialogue.Options{
		Matcher:   policy.NewMatcher(tok, cfg.Match.Threshold),
		Random:    rand.New(rand.NewSource(seed)),
		Recorders: recorders,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("session started", map[string]string{
		"session_id": session.ID(),
		"store":      cfg.Store.Driver,
		"tokenizer":  cfg.Match.Tokenizer,
	})

	runErr := session.Run(ctx, os.Stdin, os.Stdout)

	// What was learned before a read error is still worth keeping.
	if err := st.Save(ctx, base); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	stats := session.Stats()
	logger.Info("knowledge saved", map[string]string{
		"session_id": session.ID(),
		"questions":  strconv.Itoa(len(base.Questions)),
		"answers":    strconv.Itoa(len(base.Answers)),
		"created":    strconv.Itoa(stats.Created),
	})
	return nil
}
