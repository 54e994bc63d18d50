package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `app:
  name: ava
  workspace: "env:TEST_AVA_WORKSPACE"

store:
  driver: sqlite
  sqlite_path: "${app.workspace}/sqlite/ava.db"

match:
  threshold: 0.8
  tokenizer: whitespace

transcript:
  enabled: true
  dir: "${app.workspace}/sessions"

log:
  file: "${app.workspace}/logs/ava.log"
  level: debug
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ava.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_AVA_WORKSPACE", "./runtime")

	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Workspace != "./runtime" {
		t.Fatalf("expected workspace to resolve from env, got %q", cfg.App.Workspace)
	}
	if cfg.Store.SQLitePath != "./runtime/sqlite/ava.db" {
		t.Fatalf("expected workspace expansion for store.sqlite_path, got %q", cfg.Store.SQLitePath)
	}
	if cfg.Transcript.Dir != "./runtime/sessions" {
		t.Fatalf("expected workspace expansion for transcript.dir, got %q", cfg.Transcript.Dir)
	}
	if cfg.Match.Threshold != 0.8 || cfg.Match.Tokenizer != "whitespace" {
		t.Fatalf("unexpected match config: %+v", cfg.Match)
	}
	if cfg.Store.QuestionsPath != "./runtime/questions.yaml" {
		t.Fatalf("expected default questions path, got %q", cfg.Store.QuestionsPath)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: ava\n  workspace: /tmp/ava\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Store.Driver != StoreYAML {
		t.Fatalf("expected yaml store by default, got %q", cfg.Store.Driver)
	}
	if cfg.Match.Threshold != 0.75 {
		t.Fatalf("expected default threshold, got %v", cfg.Match.Threshold)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  name: ava\n  workspace: /tmp/ava\nstore:\n  driver: xml\n"))
	if err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestValidateRejectsUnknownTokenizer(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  name: ava\n  workspace: /tmp/ava\nmatch:\n  tokenizer: stemmed\n"))
	if err == nil {
		t.Fatalf("expected error for unknown tokenizer")
	}
}

func TestZeroThresholdLoadsAsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: ava\n  workspace: /tmp/ava\nmatch:\n  threshold: 0\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Match.Threshold != 0.75 {
		t.Fatalf("expected 0.75 for a zero threshold, got %v", cfg.Match.Threshold)
	}
}

func TestValidateRejectsNonPositiveThreshold(t *testing.T) {
	for _, threshold := range []float64{0, -0.5} {
		cfg := Default(t.TempDir())
		cfg.Match.Threshold = threshold
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for threshold %v", threshold)
		}
	}
	if _, err := Load(writeConfig(t, "app:\n  name: ava\n  workspace: /tmp/ava\nmatch:\n  threshold: -1\n")); err == nil {
		t.Fatalf("expected error for negative threshold in file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default(t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if err := cfg.EnsureRuntimeDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cfg.Log.File)); err != nil {
		t.Fatalf("expected log dir created: %v", err)
	}
}
