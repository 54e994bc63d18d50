package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsPositionalIDs(t *testing.T) {
	b := New()
	q0 := b.AddQuestion("how are you")
	q1 := b.AddQuestion("what is your name")
	assert.Equal(t, 0, q0.ID)
	assert.Equal(t, 1, q1.ID)
	assert.Equal(t, 1, q1.AskedCount)

	a0 := b.AddAnswer(q1.ID, "ava")
	a1 := b.AddAnswer(42, "orphan")
	assert.Equal(t, 0, a0.ID)
	assert.Equal(t, 1, a1.ID)
	assert.Equal(t, 42, a1.QuestionID)
}

func TestIncrementAsked(t *testing.T) {
	b := New()
	b.AddQuestion("hi")
	q, ok := b.IncrementAsked(0)
	require.True(t, ok)
	assert.Equal(t, 2, q.AskedCount)
	assert.Equal(t, 2, b.Questions[0].AskedCount)

	q, ok = b.IncrementAsked(7)
	assert.False(t, ok)
	assert.Equal(t, NoQuestion, q)
}

func TestAnswersFor(t *testing.T) {
	b := New()
	b.AddAnswer(0, "a")
	b.AddAnswer(1, "b")
	b.AddAnswer(0, "c")

	got := b.AnswersFor(0)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
	assert.Equal(t, 1, b.CountAnswers(1))
	assert.Empty(t, b.AnswersFor(5))
}

func TestSentinels(t *testing.T) {
	assert.False(t, NoQuestion.Found())
	assert.Equal(t, 0, NoQuestion.AskedCount)
	assert.Empty(t, NoQuestion.Text)
	assert.False(t, NoAnswer.Found())
	assert.Equal(t, -1, NoAnswer.QuestionID)
}
