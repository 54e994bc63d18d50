// Package policy decides which question the agent asks, which known
// question a reply corresponds to, and which answer it gives back.
package policy

import (
	"ava/internal/knowledge"
	"ava/internal/similarity"
	"ava/internal/tokenize"
)

// DefaultThreshold is the score a known question must exceed to count as a
// match.
const DefaultThreshold = 0.75

// unansweredWeight stands in for the answer count of a question that has
// never been answered.
const unansweredWeight = 0.1

// RandomSource is satisfied by *math/rand.Rand.
type RandomSource interface {
	Intn(n int) int
}

// Priority rewards questions that are asked often and answered rarely.
func Priority(q knowledge.Question, answerCount int) float64 {
	denom := float64(answerCount)
	if answerCount == 0 {
		denom = unansweredWeight
	}
	return float64(q.AskedCount) / denom
}

// PickQuestionToAsk returns the question with the strictly highest priority.
// Ties go to the earlier question. The first question is returned when no
// priority exceeds zero.
func PickQuestionToAsk(base *knowledge.Base) (knowledge.Question, bool) {
	if base == nil || len(base.Questions) == 0 {
		return knowledge.NoQuestion, false
	}
	best := 0.0
	bestIndex := 0
	for i, q := range base.Questions {
		p := Priority(q, base.CountAnswers(q.ID))
		if p > best {
			best = p
			bestIndex = i
		}
	}
	return base.Questions[bestIndex], true
}

// PickAnswer returns a uniformly chosen answer to questionID.
func PickAnswer(questionID int, answers []knowledge.Answer, rnd RandomSource) (knowledge.Answer, bool) {
	var candidates []knowledge.Answer
	for _, a := range answers {
		if a.QuestionID == questionID {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return knowledge.NoAnswer, false
	}
	return candidates[rnd.Intn(len(candidates))], true
}

type Matcher struct {
	Tokenizer tokenize.Tokenizer
	Threshold float64
}

// NewMatcher falls back to the Normalized tokenizer when tok is nil and to
// DefaultThreshold when threshold is not positive.
func NewMatcher(tok tokenize.Tokenizer, threshold float64) *Matcher {
	if tok == nil {
		tok = tokenize.Normalized{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{Tokenizer: tok, Threshold: threshold}
}

// Match finds the known question that best covers input. A candidate must
// score above the threshold and strictly above the best so far, so the
// earliest of equally scoring questions wins.
func (m *Matcher) Match(input string, questions []knowledge.Question) (knowledge.Question, float64, bool) {
	words := m.Tokenizer.Tokenize(input)
	bestIndex := -1
	bestScore := 0.0
	for i, q := range questions {
		score := similarity.Score(words, m.Tokenizer.Tokenize(q.Text))
		if score > m.Threshold && score > bestScore {
			bestIndex = i
			bestScore = score
		}
	}
	if bestIndex < 0 {
		return knowledge.NoQuestion, 0, false
	}
	return questions[bestIndex], bestScore, true
}

type Result struct {
	Question knowledge.Question
	Score    float64
	Created  bool
}

// MatchOrCreateQuestion recognizes input as a known question and bumps its
// asked counter, or records it as a new question.
func (m *Matcher) MatchOrCreateQuestion(input string, base *knowledge.Base) Result {
	q, score, ok := m.Match(input, base.Questions)
	if !ok {
		return Result{Question: base.AddQuestion(input), Created: true}
	}
	if updated, found := base.IncrementAsked(q.ID); found {
		q = updated
	}
	return Result{Question: q, Score: score}
}
