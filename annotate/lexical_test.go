package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexical_Annotate_Basic(t *testing.T) {
	a := NewLexical()

	tokens, err := a.Annotate("The system should load fast.")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, "The", tokens[0].Text)
	assert.Equal(t, "the", tokens[0].Lemma)
	assert.Equal(t, POSDeterminer, tokens[0].POS)

	assert.Equal(t, "system", tokens[1].Lemma)
	assert.Equal(t, POSNoun, tokens[1].POS)

	assert.Equal(t, "should", tokens[2].Lemma)
	assert.Equal(t, POSModal, tokens[2].POS)

	assert.Equal(t, "load", tokens[3].Lemma)
	assert.Equal(t, POSVerb, tokens[3].POS)

	assert.Equal(t, "fast", tokens[4].Lemma)
	assert.Equal(t, POSAdjective, tokens[4].POS)

	// All tokens in one sentence, spans line up with the input.
	for _, tok := range tokens {
		assert.Equal(t, 0, tok.Sentence)
		assert.Equal(t, tok.Text, "The system should load fast."[tok.Start:tok.End])
	}
}

func TestLexical_Annotate_SentenceBoundaries(t *testing.T) {
	a := NewLexical()

	tokens, err := a.Annotate("User logs in. The page loads. Done!")
	require.NoError(t, err)

	sentences := map[int][]string{}
	for _, tok := range tokens {
		sentences[tok.Sentence] = append(sentences[tok.Sentence], tok.Lemma)
	}

	require.Len(t, sentences, 3)
	assert.Equal(t, []string{"user", "log", "in"}, sentences[0])
	assert.Equal(t, []string{"the", "page", "load"}, sentences[1])
	assert.Equal(t, []string{"do"}, sentences[2])
}

func TestLexical_Annotate_DecimalNotSentenceBreak(t *testing.T) {
	a := NewLexical()

	tokens, err := a.Annotate("Respond within 2.5 seconds")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, "2.5", tokens[2].Text)
	assert.Equal(t, POSNumber, tokens[2].POS)
	for _, tok := range tokens {
		assert.Equal(t, 0, tok.Sentence)
	}
}

func TestLexical_Annotate_EmptyInput(t *testing.T) {
	a := NewLexical()

	for _, input := range []string{"", "   ", "\n\n", "..."} {
		tokens, err := a.Annotate(input)
		require.NoError(t, err)
		assert.Empty(t, tokens, "input %q", input)
	}
}

func TestLexical_Annotate_InvalidUTF8(t *testing.T) {
	a := NewLexical()

	_, err := a.Annotate("valid prefix \xff\xfe")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestLexical_Annotate_Deterministic(t *testing.T) {
	a := NewLexical()
	input := "The admin should verify that it works correctly on any browser."

	first, err := a.Annotate(input)
	require.NoError(t, err)
	second, err := a.Annotate(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLemma(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"errors", "error"},
		{"handles", "handle"},
		{"handling", "handle"},
		{"logged", "log"},
		{"logs", "log"},
		{"users", "user"},
		{"entries", "entry"},
		{"boxes", "box"},
		{"passes", "pass"},
		{"submitted", "submit"},
		{"enabled", "enable"},
		{"is", "be"},
		{"was", "be"},
		{"has", "have"},
		{"properly", "properly"},
		{"status", "status"},
		{"this", "this"},
		{"data", "data"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Lemma(tt.word), "lemma of %q", tt.word)
	}
}
