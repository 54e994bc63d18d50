// Package sessions keeps a markdown transcript of each dialogue session.
package sessions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Store writes one markdown file per session. Each question ava asks opens
// a numbered turn; a reply with no question before it opens its own turn.
type Store struct {
	dir string

	mu      sync.Mutex
	turns   map[string]int
	waiting map[string]bool
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("sessions: dir is required")
	}
	return &Store{
		dir:     dir,
		turns:   make(map[string]int),
		waiting: make(map[string]bool),
	}, nil
}

func (s *Store) Path(sessionID string) string {
	return filepath.Join(s.dir, fileName(sessionID)+".md")
}

// Append adds one console line to the session transcript and returns the
// transcript path. Assistant lines carry their console prefix ("Q: " or
// "A: ").
func (s *Store) Append(sessionID, role, content string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = "unknown"
	}
	path := s.Path(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(&b, "# Session %s\n\nStarted %s\n\n", sessionID, time.Now().UTC().Format(time.RFC3339))
	} else if err != nil {
		return path, fmt.Errorf("sessions: stat: %w", err)
	}

	content = strings.TrimSpace(content)
	switch {
	case isAssistant(role) && strings.HasPrefix(content, "Q: "):
		s.openTurn(&b, sessionID)
		s.waiting[sessionID] = true
		fmt.Fprintf(&b, "**ava asks:** %s\n\n", strings.TrimPrefix(content, "Q: "))
	case isAssistant(role):
		fmt.Fprintf(&b, "**ava:** %s\n\n", strings.TrimPrefix(content, "A: "))
	default:
		if !s.waiting[sessionID] {
			s.openTurn(&b, sessionID)
		}
		s.waiting[sessionID] = false
		fmt.Fprintf(&b, "**you:** %s\n\n", content)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return path, fmt.Errorf("sessions: create dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return path, fmt.Errorf("sessions: open: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(b.String()); err != nil {
		return path, fmt.Errorf("sessions: write: %w", err)
	}
	return path, nil
}

// Record satisfies dialogue.Recorder.
func (s *Store) Record(_ context.Context, sessionID, role, content string) error {
	_, err := s.Append(sessionID, role, content)
	return err
}

func (s *Store) openTurn(b *strings.Builder, sessionID string) {
	s.turns[sessionID]++
	fmt.Fprintf(b, "## Turn %d (%s)\n\n", s.turns[sessionID], time.Now().UTC().Format("15:04:05"))
}

func isAssistant(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), RoleAssistant)
}

// fileName keeps lower-case letters, digits, '-' and '_' and folds
// everything else to '-'.
func fileName(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		return "session"
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}
