// Package dialogue runs the console question/answer loop over a knowledge
// base.
package dialogue

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"ava/internal/knowledge"
	"ava/internal/logging"
	"ava/internal/policy"
)

const Unknown = "I don't know."

// MaxLine is the longest input line Run accepts, in bytes.
const MaxLine = 8 << 20

// Recorder receives every line of the conversation.
type Recorder interface {
	Record(ctx context.Context, sessionID, role, content string) error
}

type Options struct {
	Matcher   *policy.Matcher
	Random    policy.RandomSource
	Recorders []Recorder
	// SessionID defaults to a random UUID.
	SessionID string
}

type Stats struct {
	Turns      int
	Asked      int
	Answered   int
	Created    int
	Recognized int
	Unknown    int
}

type Reply struct {
	Text     string
	Question knowledge.Question
	Answer   knowledge.Answer
	Created  bool
	Score    float64
}

type Session struct {
	id        string
	base      *knowledge.Base
	matcher   *policy.Matcher
	rnd       policy.RandomSource
	recorders []Recorder
	logger    *logging.Logger
	stats     Stats
}

func New(base *knowledge.Base, opts Options, logger *logging.Logger) (*Session, error) {
	if base == nil {
		return nil, errors.New("dialogue: knowledge base is required")
	}
	if opts.Random == nil {
		return nil, errors.New("dialogue: random source is required")
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = policy.NewMatcher(nil, policy.DefaultThreshold)
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	return &Session{
		id:        id,
		base:      base,
		matcher:   matcher,
		rnd:       opts.Random,
		recorders: opts.Recorders,
		logger:    logger,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Stats() Stats {
	return s.stats
}

// Run asks, listens and replies until it reads an empty line or in is
// exhausted. The knowledge base is updated in place; saving it is up to the
// caller.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLine)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		asked, ok := policy.PickQuestionToAsk(s.base)
		if ok {
			s.stats.Asked++
			if err := s.say(ctx, out, "Q: "+asked.Text); err != nil {
				return err
			}
		}

		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if input == "" {
			break
		}
		s.record(ctx, "user", input)

		reply := s.Turn(asked, input)
		if err := s.say(ctx, out, "A: "+reply.Text); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dialogue: read input: %w", err)
	}
	s.logSummary()
	return nil
}

// Turn handles one line of input. asked is the question shown before the
// input was read, or knowledge.NoQuestion when nothing was asked; the input
// is stored as its answer.
func (s *Session) Turn(asked knowledge.Question, input string) Reply {
	s.stats.Turns++
	if asked.Found() {
		s.base.AddAnswer(asked.ID, input)
		s.stats.Answered++
	}

	res := s.matcher.MatchOrCreateQuestion(input, s.base)
	reply := Reply{Question: res.Question, Created: res.Created, Score: res.Score, Answer: knowledge.NoAnswer}
	if res.Created {
		s.stats.Created++
		s.stats.Unknown++
		reply.Text = Unknown
		s.debug("question created", res.Question, res.Score)
		return reply
	}

	s.stats.Recognized++
	s.debug("question recognized", res.Question, res.Score)
	answer, ok := policy.PickAnswer(res.Question.ID, s.base.Answers, s.rnd)
	if !ok {
		s.stats.Unknown++
		reply.Text = Unknown
		return reply
	}
	reply.Answer = answer
	reply.Text = answer.Text
	return reply
}

func (s *Session) say(ctx context.Context, out io.Writer, line string) error {
	if _, err := fmt.Fprintln(out, line); err != nil {
		return fmt.Errorf("dialogue: write output: %w", err)
	}
	s.record(ctx, "assistant", line)
	return nil
}

func (s *Session) record(ctx context.Context, role, content string) {
	for _, r := range s.recorders {
		if err := r.Record(ctx, s.id, role, content); err != nil && s.logger != nil {
			s.logger.Warn("transcript write failed", map[string]string{
				"session_id": s.id,
				"error":      err.Error(),
			})
		}
	}
}

func (s *Session) debug(msg string, q knowledge.Question, score float64) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, map[string]string{
		"session_id":  s.id,
		"question_id": strconv.Itoa(q.ID),
		"asked_count": strconv.Itoa(q.AskedCount),
		"score":       strconv.FormatFloat(score, 'f', 3, 64),
	})
}

func (s *Session) logSummary() {
	if s.logger == nil {
		return
	}
	s.logger.Info("session finished", map[string]string{
		"session_id": s.id,
		"turns":      strconv.Itoa(s.stats.Turns),
		"created":    strconv.Itoa(s.stats.Created),
		"recognized": strconv.Itoa(s.stats.Recognized),
		"unknown":    strconv.Itoa(s.stats.Unknown),
		"questions":  strconv.Itoa(len(s.base.Questions)),
		"answers":    strconv.Itoa(len(s.base.Answers)),
	})
}
