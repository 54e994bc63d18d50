package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ava/internal/knowledge"
)

type DB struct {
	db *sql.DB
}

type SessionMessage struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	CreatedAt string
}

func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func migrate(db *sql.DB) error {
	statements := []string{
		"PRAGMA journal_mode=WAL;",
		`CREATE TABLE IF NOT EXISTS questions (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			text TEXT NOT NULL,
			asked_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			text TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_answers_question_id ON answers(question_id);",
		`CREATE TABLE IF NOT EXISTS session_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_session_messages_session_id ON session_messages(session_id, id);",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}

func (d *DB) ListQuestions(ctx context.Context) ([]knowledge.Question, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("sqlite: db not initialized")
	}
	rows, err := d.db.QueryContext(ctx, "SELECT id, text, asked_count FROM questions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("sqlite: list questions: %w", err)
	}
	defer rows.Close()

	questions := []knowledge.Question{}
	for rows.Next() {
		var q knowledge.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.AskedCount); err != nil {
			return nil, fmt.Errorf("sqlite: scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate questions: %w", err)
	}
	return questions, nil
}

func (d *DB) ListAnswers(ctx context.Context) ([]knowledge.Answer, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("sqlite: db not initialized")
	}
	rows, err := d.db.QueryContext(ctx, "SELECT id, question_id, text FROM answers ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("sqlite: list answers: %w", err)
	}
	defer rows.Close()

	answers := []knowledge.Answer{}
	for rows.Next() {
		var a knowledge.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text); err != nil {
			return nil, fmt.Errorf("sqlite: scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate answers: %w", err)
	}
	return answers, nil
}

// ReplaceKnowledge rewrites both collections in one transaction, keeping
// their order.
func (d *DB) ReplaceKnowledge(ctx context.Context, base *knowledge.Base) error {
	if d == nil || d.db == nil {
		return errors.New("sqlite: db not initialized")
	}
	if base == nil {
		return errors.New("sqlite: knowledge base is required")
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions"); err != nil {
		return fmt.Errorf("sqlite: clear questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM answers"); err != nil {
		return fmt.Errorf("sqlite: clear answers: %w", err)
	}
	for i, q := range base.Questions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO questions (position, id, text, asked_count) VALUES (?, ?, ?, ?)",
			i, q.ID, q.Text, q.AskedCount,
		); err != nil {
			return fmt.Errorf("sqlite: insert question: %w", err)
		}
	}
	for i, a := range base.Answers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO answers (position, id, question_id, text) VALUES (?, ?, ?, ?)",
			i, a.ID, a.QuestionID, a.Text,
		); err != nil {
			return fmt.Errorf("sqlite: insert answer: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (d *DB) CountKnowledge(ctx context.Context) (int, int, error) {
	if d == nil || d.db == nil {
		return 0, 0, errors.New("sqlite: db not initialized")
	}
	var questions, answers int
	row := d.db.QueryRowContext(ctx, "SELECT (SELECT COUNT(*) FROM questions), (SELECT COUNT(*) FROM answers)")
	if err := row.Scan(&questions, &answers); err != nil {
		return 0, 0, fmt.Errorf("sqlite: count knowledge: %w", err)
	}
	return questions, answers, nil
}

func (d *DB) AppendSessionMessage(ctx context.Context, sessionID, role, content string) (int64, error) {
	if d == nil || d.db == nil {
		return 0, errors.New("sqlite: db not initialized")
	}
	if strings.TrimSpace(sessionID) == "" {
		return 0, errors.New("sqlite: session id is required")
	}
	if strings.TrimSpace(role) == "" {
		role = "user"
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := d.db.ExecContext(ctx,
		"INSERT INTO session_messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		sessionID, strings.ToLower(role), content, timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: insert session message: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Record satisfies dialogue.Recorder.
func (d *DB) Record(ctx context.Context, sessionID, role, content string) error {
	_, err := d.AppendSessionMessage(ctx, sessionID, role, content)
	return err
}

func (d *DB) ListSessionMessages(ctx context.Context, sessionID string, limit int) ([]SessionMessage, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("sqlite: db not initialized")
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, session_id, role, content, created_at FROM session_messages WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list session messages: %w", err)
	}
	defer rows.Close()

	var messages []SessionMessage
	for rows.Next() {
		var msg SessionMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan session message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate session messages: %w", err)
	}
	return messages, nil
}
