package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Store      StoreConfig      `yaml:"store"`
	Match      MatchConfig      `yaml:"match"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Log        LogConfig        `yaml:"log"`
}

type AppConfig struct {
	Name      string `yaml:"name"`
	Workspace string `yaml:"workspace"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	QuestionsPath string `yaml:"questions_path"`
	AnswersPath   string `yaml:"answers_path"`
	SQLitePath    string `yaml:"sqlite_path"`
}

type MatchConfig struct {
	// Threshold must be above 0. An absent or zero value in the file loads
	// as 0.75.
	Threshold float64 `yaml:"threshold"`
	Tokenizer string  `yaml:"tokenizer"`
}

type TranscriptConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file exists.
func Default(workspace string) *Config {
	if strings.TrimSpace(workspace) == "" {
		workspace = "./runtime"
	}
	cfg := &Config{
		App: AppConfig{Name: "ava", Workspace: workspace},
		Store: StoreConfig{
			Driver:        StoreYAML,
			QuestionsPath: "${app.workspace}/questions.yaml",
			AnswersPath:   "${app.workspace}/answers.yaml",
			SQLitePath:    "${app.workspace}/sqlite/ava.db",
		},
		Match:      MatchConfig{Threshold: 0.75, Tokenizer: "normalized"},
		Transcript: TranscriptConfig{Dir: "${app.workspace}/sessions"},
		Log:        LogConfig{File: "${app.workspace}/logs/ava.log", Level: "info"},
	}
	cfg.expandWorkspaceRefs()
	return cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.expandEnv()
	cfg.applyDefaults()
	cfg.expandWorkspaceRefs()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) expandEnv() {
	c.App.Workspace = expandEnvValue(c.App.Workspace)
}

func expandEnvValue(value string) string {
	const prefix = "env:"
	if !strings.HasPrefix(value, prefix) {
		return value
	}
	key := strings.TrimSpace(strings.TrimPrefix(value, prefix))
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}

func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = StoreYAML
	}
	if c.Store.QuestionsPath == "" {
		c.Store.QuestionsPath = "${app.workspace}/questions.yaml"
	}
	if c.Store.AnswersPath == "" {
		c.Store.AnswersPath = "${app.workspace}/answers.yaml"
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "${app.workspace}/sqlite/ava.db"
	}
	if c.Match.Threshold == 0 {
		c.Match.Threshold = 0.75
	}
	if c.Match.Tokenizer == "" {
		c.Match.Tokenizer = "normalized"
	}
	if c.Transcript.Dir == "" {
		c.Transcript.Dir = "${app.workspace}/sessions"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) expandWorkspaceRefs() {
	workspace := c.App.Workspace
	if workspace == "" {
		return
	}
	c.Store.QuestionsPath = expandWorkspace(c.Store.QuestionsPath, workspace)
	c.Store.AnswersPath = expandWorkspace(c.Store.AnswersPath, workspace)
	c.Store.SQLitePath = expandWorkspace(c.Store.SQLitePath, workspace)
	c.Transcript.Dir = expandWorkspace(c.Transcript.Dir, workspace)
	c.Log.File = expandWorkspace(c.Log.File, workspace)
}

func expandWorkspace(value, workspace string) string {
	const token = "${app.workspace}"
	return strings.ReplaceAll(value, token, workspace)
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("config: app.name is required")
	}
	if c.App.Workspace == "" {
		return errors.New("config: app.workspace is required")
	}
	switch c.Store.Driver {
	case StoreYAML:
		if c.Store.QuestionsPath == "" || c.Store.AnswersPath == "" {
			return errors.New("config: store.questions_path and store.answers_path are required for the yaml store")
		}
		if c.Store.QuestionsPath == c.Store.AnswersPath {
			return errors.New("config: store.questions_path and store.answers_path must differ")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: store.sqlite_path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("config: store.driver must be yaml or sqlite, got %q", c.Store.Driver)
	}
	if c.Match.Threshold <= 0 {
		return fmt.Errorf("config: match.threshold must be greater than 0, got %v", c.Match.Threshold)
	}
	switch c.Match.Tokenizer {
	case "normalized", "whitespace":
	default:
		return fmt.Errorf("config: match.tokenizer must be normalized or whitespace, got %q", c.Match.Tokenizer)
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		return errors.New("config: transcript.dir is required when transcript.enabled is true")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

func (c *Config) EnsureRuntimeDirs() error {
	dirs := []string{c.App.Workspace}
	switch c.Store.Driver {
	case StoreYAML:
		dirs = append(dirs, filepath.Dir(c.Store.QuestionsPath), filepath.Dir(c.Store.AnswersPath))
	case StoreSQLite:
		dirs = append(dirs, filepath.Dir(c.Store.SQLitePath))
	}
	if c.Transcript.Enabled {
		dirs = append(dirs, c.Transcript.Dir)
	}
	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}
