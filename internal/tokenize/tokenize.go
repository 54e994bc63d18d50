// Package tokenize splits sentences into words for similarity scoring.
package tokenize

import (
	"fmt"
	"strings"
)

type Tokenizer interface {
	Tokenize(sentence string) []string
}

// Normalized lower-cases the sentence, expands common English contractions
// and strips sentence punctuation before splitting. Replacements run in
// order so contractions are expanded while their apostrophes still exist.
type Normalized struct{}

var replacements = []struct{ from, to string }{
	{"'re", " are"},
	{"'ve", " have"},
	{"can't", "cannot"},
	{"n't", " not"},
	{"?", ""},
	{"!", ""},
	{",", ""},
	{".", ""},
}

func (Normalized) Tokenize(sentence string) []string {
	s := strings.ToLower(sentence)
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return split(s)
}

// Whitespace splits on spaces and nothing else.
type Whitespace struct{}

func (Whitespace) Tokenize(sentence string) []string {
	return split(sentence)
}

func split(s string) []string {
	parts := strings.Split(s, " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

const (
	NameNormalized = "normalized"
	NameWhitespace = "whitespace"
)

func ByName(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameNormalized, "":
		return Normalized{}, nil
	case NameWhitespace:
		return Whitespace{}, nil
	default:
		return nil, fmt.Errorf("tokenize: unknown tokenizer %q", name)
	}
}
