// Package similarity scores how much of one token sequence is covered by
// another.
package similarity

import "unicode/utf8"

// Score returns the length-weighted share of input covered by words that
// also appear in sample. Every equal sample word adds the input word's
// length again, so repeated sample words can push the result above 1.
// An empty input scores 0.
func Score(input, sample []string) float64 {
	var inputTotal, matchTotal int
	for _, word := range input {
		n := utf8.RuneCountInString(word)
		inputTotal += n
		for _, candidate := range sample {
			if candidate == word {
				matchTotal += n
			}
		}
	}
	if inputTotal == 0 {
		return 0
	}
	return float64(matchTotal) / float64(inputTotal)
}
