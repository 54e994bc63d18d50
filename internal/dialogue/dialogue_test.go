package dialogue

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ava/internal/knowledge"
	"ava/internal/policy"
)

type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

type memoryRecorder struct {
	lines []string
	fail  bool
}

func (m *memoryRecorder) Record(_ context.Context, sessionID, role, content string) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.lines = append(m.lines, role+": "+content)
	return nil
}

func newSession(t *testing.T, base *knowledge.Base, recorders ...Recorder) *Session {
	t.Helper()
	s, err := New(base, Options{
		Matcher:   policy.NewMatcher(nil, policy.DefaultThreshold),
		Random:    firstRand{},
		Recorders: recorders,
		SessionID: "test",
	}, nil)
	require.NoError(t, err)
	return s
}

func TestRunEmptyBase(t *testing.T) {
	base := knowledge.New()
	s := newSession(t, base)
	var out bytes.Buffer

	err := s.Run(context.Background(), strings.NewReader("hello there\n\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "A: I don't know.\nQ: hello there\n", out.String())
	require.Len(t, base.Questions, 1)
	assert.Equal(t, knowledge.Question{ID: 0, Text: "hello there", AskedCount: 1}, base.Questions[0])
	assert.Empty(t, base.Answers)
}

func TestRunLearnsAnswers(t *testing.T) {
	base := knowledge.New()
	base.AddQuestion("how are you")
	rec := &memoryRecorder{}
	s := newSession(t, base, rec)
	var out bytes.Buffer

	err := s.Run(context.Background(), strings.NewReader("fine\nHow are you?\n\n"), &out)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Q: how are you",
		"A: I don't know.",
		"Q: fine",
		"A: fine",
		"Q: how are you",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())

	require.Len(t, base.Questions, 2)
	assert.Equal(t, 2, base.Questions[0].AskedCount)
	assert.Equal(t, []knowledge.Answer{
		{ID: 0, QuestionID: 0, Text: "fine"},
		{ID: 1, QuestionID: 1, Text: "How are you?"},
	}, base.Answers)

	assert.Equal(t, Stats{Turns: 2, Asked: 3, Answered: 2, Created: 1, Recognized: 1, Unknown: 1}, s.Stats())
	assert.Equal(t, "user: fine", rec.lines[1])
	assert.Len(t, rec.lines, 7)
}

func TestRunStopsAtEOF(t *testing.T) {
	base := knowledge.New()
	s := newSession(t, base)
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader("one"), &out))
	assert.Len(t, base.Questions, 1)
}

func TestRunAcceptsLongLines(t *testing.T) {
	base := knowledge.New()
	s := newSession(t, base)
	long := strings.Repeat("word ", 20000)
	var out bytes.Buffer

	require.NoError(t, s.Run(context.Background(), strings.NewReader(long+"\n\n"), &out))
	require.Len(t, base.Questions, 1)
	assert.Equal(t, long, base.Questions[0].Text)
	assert.Equal(t, 1, s.Stats().Created)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newSession(t, knowledge.New())
	err := s.Run(ctx, strings.NewReader("hi\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorderFailureDoesNotStopDialogue(t *testing.T) {
	base := knowledge.New()
	s := newSession(t, base, &memoryRecorder{fail: true})
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader("hi\n\n"), &out))
	assert.Contains(t, out.String(), "A: I don't know.")
}

func TestTurnRecognizedWithoutAnswers(t *testing.T) {
	base := knowledge.New()
	base.AddQuestion("where do you live")
	s := newSession(t, base)

	reply := s.Turn(knowledge.NoQuestion, "Where do you live?")
	assert.False(t, reply.Created)
	assert.Equal(t, Unknown, reply.Text)
	assert.Equal(t, knowledge.NoAnswer, reply.Answer)
	assert.Equal(t, 2, base.Questions[0].AskedCount)
	assert.Empty(t, base.Answers, "nothing was asked, so nothing is recorded as an answer")
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, Options{Random: firstRand{}}, nil)
	assert.Error(t, err)
	_, err = New(knowledge.New(), Options{}, nil)
	assert.Error(t, err)

	s, err := New(knowledge.New(), Options{Random: firstRand{}}, nil)
	require.NoError(t, err)
	assert.Len(t, s.ID(), 36)
}
