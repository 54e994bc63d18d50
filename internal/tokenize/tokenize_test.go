package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Can't do THIS?!", []string{"cannot", "do", "this"}},
		{"You're here, aren't you.", []string{"you", "are", "here", "are", "not", "you"}},
		{"We've   got  spaces", []string{"we", "have", "got", "spaces"}},
		{"Don't", []string{"do", "not"}},
		{"", []string{}},
		{"?!,.", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalized{}.Tokenize(tc.in))
		})
	}
}

func TestNormalizedKeepsOtherWhitespace(t *testing.T) {
	// Only the space character separates tokens.
	assert.Equal(t, []string{"a\tb"}, Normalized{}.Tokenize("A\tB"))
}

func TestWhitespace(t *testing.T) {
	assert.Equal(t, []string{"Can't", "do", "THIS?!"}, Whitespace{}.Tokenize(" Can't  do THIS?! "))
	assert.Empty(t, Whitespace{}.Tokenize(""))
}

func TestByName(t *testing.T) {
	tok, err := ByName("whitespace")
	require.NoError(t, err)
	assert.IsType(t, Whitespace{}, tok)

	tok, err = ByName("")
	require.NoError(t, err)
	assert.IsType(t, Normalized{}, tok)

	_, err = ByName("stemmed")
	assert.Error(t, err)
}
