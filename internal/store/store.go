// Package store persists the knowledge base between sessions.
package store

import (
	"context"
	"fmt"

	"ava/internal/config"
	"ava/internal/knowledge"
	"ava/internal/sqlite"
)

type Store interface {
	// Exists reports whether the backing storage has been created yet.
	Exists() bool
	Load(ctx context.Context) (*knowledge.Base, error)
	Save(ctx context.Context, base *knowledge.Base) error
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreYAML, "":
		return NewYAML(cfg.QuestionsPath, cfg.AnswersPath)
	case config.StoreSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// Exists reports whether the store cfg points at has been created, without
// opening it.
func Exists(cfg config.StoreConfig) bool {
	switch cfg.Driver {
	case config.StoreYAML, "":
		return fileExists(cfg.QuestionsPath) && fileExists(cfg.AnswersPath)
	case config.StoreSQLite:
		return fileExists(cfg.SQLitePath)
	default:
		return false
	}
}

// Copy loads src and saves its contents into dst.
func Copy(ctx context.Context, dst, src Store) (*knowledge.Base, error) {
	base, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := dst.Save(ctx, base); err != nil {
		return nil, err
	}
	return base, nil
}

var _ Store = (*YAML)(nil)
var _ Store = (*SQLite)(nil)

type SQLite struct {
	path string
	db   *sqlite.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return &SQLite{path: path, db: db}, nil
}

// DB exposes the underlying database so the session transcript can share it.
func (s *SQLite) DB() *sqlite.DB {
	return s.db
}

func (s *SQLite) Exists() bool {
	return fileExists(s.path)
}

func (s *SQLite) Load(ctx context.Context) (*knowledge.Base, error) {
	questions, err := s.db.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load questions: %w", err)
	}
	answers, err := s.db.ListAnswers(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load answers: %w", err)
	}
	return &knowledge.Base{Questions: questions, Answers: answers}, nil
}

func (s *SQLite) Save(ctx context.Context, base *knowledge.Base) error {
	if err := s.db.ReplaceKnowledge(ctx, base); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
