// Package probe reports how known questions score against a sentence. It is
// the diagnostic counterpart of policy.Matcher and applies no threshold.
package probe

import (
	"sort"

	"ava/internal/knowledge"
	"ava/internal/similarity"
	"ava/internal/tokenize"
)

type Match struct {
	Index int     `json:"index"`
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type Prober struct {
	tokenizer tokenize.Tokenizer
}

func New(tok tokenize.Tokenizer) *Prober {
	if tok == nil {
		tok = tokenize.Whitespace{}
	}
	return &Prober{tokenizer: tok}
}

// Best returns the first question with the highest positive score, or a
// match with Index -1 when nothing overlaps.
func (p *Prober) Best(input string, questions []knowledge.Question) Match {
	words := p.tokenizer.Tokenize(input)
	best := Match{Index: -1, ID: -1}
	for i, q := range questions {
		score := similarity.Score(words, p.tokenizer.Tokenize(q.Text))
		if score > best.Score {
			best = Match{Index: i, ID: q.ID, Text: q.Text, Score: score}
		}
	}
	return best
}

// Rank returns up to limit questions with a positive score, highest first.
// Equal scores keep collection order.
func (p *Prober) Rank(input string, questions []knowledge.Question, limit int) []Match {
	words := p.tokenizer.Tokenize(input)
	if len(words) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}
	matches := make([]Match, 0, len(questions))
	for i, q := range questions {
		score := similarity.Score(words, p.tokenizer.Tokenize(q.Text))
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Index: i, ID: q.ID, Text: q.Text, Score: score})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
