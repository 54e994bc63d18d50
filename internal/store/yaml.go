package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ava/internal/knowledge"
)

// YAML keeps questions and answers in two separate YAML documents.
type YAML struct {
	questionsPath string
	answersPath   string
}

func NewYAML(questionsPath, answersPath string) (*YAML, error) {
	if strings.TrimSpace(questionsPath) == "" || strings.TrimSpace(answersPath) == "" {
		return nil, errors.New("store: questions and answers paths are required")
	}
	return &YAML{questionsPath: questionsPath, answersPath: answersPath}, nil
}

func (y *YAML) Exists() bool {
	return fileExists(y.questionsPath) && fileExists(y.answersPath)
}

// Load reads both collections. Missing files are created empty first.
func (y *YAML) Load(ctx context.Context) (*knowledge.Base, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fileExists(y.questionsPath) {
		if err := writeYAML(y.questionsPath, []knowledge.Question{}); err != nil {
			return nil, err
		}
	}
	if !fileExists(y.answersPath) {
		if err := writeYAML(y.answersPath, []knowledge.Answer{}); err != nil {
			return nil, err
		}
	}
	base := knowledge.New()
	if err := readYAML(y.questionsPath, &base.Questions); err != nil {
		return nil, err
	}
	if err := readYAML(y.answersPath, &base.Answers); err != nil {
		return nil, err
	}
	if base.Questions == nil {
		base.Questions = []knowledge.Question{}
	}
	if base.Answers == nil {
		base.Answers = []knowledge.Answer{}
	}
	return base, nil
}

func (y *YAML) Save(ctx context.Context, base *knowledge.Base) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if base == nil {
		return errors.New("store: knowledge base is required")
	}
	if err := writeYAML(y.questionsPath, base.Questions); err != nil {
		return err
	}
	return writeYAML(y.answersPath, base.Answers)
}

func (y *YAML) Close() error {
	return nil
}

func readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: parse %s: %w", path, err)
	}
	return nil
}

// writeYAML replaces path atomically so an interrupted save keeps the
// previous contents.
func writeYAML(path string, value any) error {
	raw, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
