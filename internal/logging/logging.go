package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Logger struct {
	service string
}

type entry struct {
	Timestamp string            `json:"ts"`
	Level     string            `json:"level"`
	Service   string            `json:"service"`
	Message   string            `json:"msg"`
	Fields    map[string]string `json:"fields,omitempty"`
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// Output is shared by every Logger. Stdout belongs to the dialogue, so the
// default sink is stderr.
var (
	mu       sync.Mutex
	out      io.Writer = os.Stderr
	file     *os.File
	minLevel = levels["info"]
)

func New(service string) *Logger {
	return &Logger{service: service}
}

// SetFile appends all subsequent log lines to path.
func SetFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("logging: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("logging: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = f
	out = f
	return nil
}

func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
		file = nil
	}
	out = w
}

func SetLevel(level string) error {
	value, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return fmt.Errorf("logging: unknown level %q", level)
	}
	mu.Lock()
	minLevel = value
	mu.Unlock()
	return nil
}

func (l *Logger) Debug(msg string, fields map[string]string) {
	l.write("debug", msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]string) {
	l.write("info", msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]string) {
	l.write("warn", msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]string) {
	l.write("error", msg, fields)
}

func (l *Logger) write(level, msg string, fields map[string]string) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if levels[level] < minLevel {
		return
	}
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Message:   msg,
		Fields:    fields,
	}
	b, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log marshal error: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(b))
}
