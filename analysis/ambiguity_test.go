package analysis

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/readyspec/annotate"
	"github.com/c360studio/readyspec/catalog"
)

func tokenize(t *testing.T, text string) []annotate.Token {
	t.Helper()
	tokens, err := annotate.NewLexical().Annotate(text)
	require.NoError(t, err)
	return tokens
}

func categories(findings []Finding) []catalog.Category {
	out := make([]catalog.Category, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Category)
	}
	return out
}

func findByCategory(t *testing.T, findings []Finding, c catalog.Category) Finding {
	t.Helper()
	for _, f := range findings {
		if f.Category == c {
			return f
		}
	}
	t.Fatalf("no finding with category %q in %v", c, categories(findings))
	return Finding{}
}

func TestDetectAmbiguity_ReferenceScenario(t *testing.T) {
	text := "The system should load fast and handle errors properly"
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())

	require.Len(t, findings, 3)

	modality := findByCategory(t, findings, catalog.CategoryWeakModality)
	assert.Equal(t, "should", modality.Text)
	assert.Equal(t, float64(20), modality.Weight)

	subjective := findByCategory(t, findings, catalog.CategorySubjectiveTerm)
	assert.Equal(t, "fast", subjective.Text)
	assert.Equal(t, float64(15), subjective.Weight)

	vague := findByCategory(t, findings, catalog.CategoryNonTestable)
	assert.Equal(t, "handle errors properly", vague.Text)
	assert.Equal(t, float64(30), vague.Weight)

	// Spans point back into the source text.
	for _, f := range findings {
		assert.Equal(t, f.Text, text[f.Start:f.End])
	}
}

func TestDetectAmbiguity_QuantifierSuppressesSubjective(t *testing.T) {
	text := "The page should load fast, within 2 seconds."
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())

	cats := categories(findings)
	assert.NotContains(t, cats, catalog.CategorySubjectiveTerm,
		"a quantified threshold in the sentence suppresses the subjective term")
	assert.Contains(t, cats, catalog.CategoryWeakModality)
}

func TestDetectAmbiguity_QuantifierInOtherSentenceDoesNotSuppress(t *testing.T) {
	text := "Timeout is 2 seconds. The page must load fast."
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())

	assert.Contains(t, categories(findings), catalog.CategorySubjectiveTerm,
		"suppression is same-sentence only")
}

func TestDetectAmbiguity_ModalityPerOccurrence(t *testing.T) {
	text := "It should retry and should log failures."
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())

	count := 0
	for _, f := range findings {
		if f.Category == catalog.CategoryWeakModality {
			count++
		}
	}
	assert.Equal(t, 2, count, "each modality occurrence is an independent finding")
}

func TestDetectAmbiguity_UndefinedReference(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"sentence-initial pronoun", "Click submit. It should work correctly.", true},
		{"noun antecedent", "The user clicks the button and it turns green.", false},
		{"determiner use", "Press this button to continue.", false},
		{"pronoun antecedent", "It appears after they retry.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := DetectAmbiguity(tt.text, tokenize(t, tt.text), catalog.Default())
			found := false
			for _, f := range findings {
				if f.Category == catalog.CategoryUndefinedReference {
					found = true
				}
			}
			assert.Equal(t, tt.want, found, "text: %s", tt.text)
		})
	}
}

func TestDetectAmbiguity_RegexOpenEnded(t *testing.T) {
	text := "Validate name, email, and so on"
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())

	f := findByCategory(t, findings, catalog.CategoryNonTestable)
	assert.Equal(t, "and so on", f.Text)
}

func TestDetectAmbiguity_DuplicateSpanSameCategoryCollapses(t *testing.T) {
	// Two rules of the same category matching the same span produce one
	// finding; the same span under a different category stays separate.
	rules := []catalog.Rule{
		{
			Name: "subj-lemma", Category: catalog.CategorySubjectiveTerm, Weight: 15,
			Message: "a '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerLemma, Lemmas: []string{"fast"}},
		},
		{
			Name: "subj-literal", Category: catalog.CategorySubjectiveTerm, Weight: 15,
			Message: "b '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerLiteral, Literals: []string{"fast"}},
		},
		{
			Name: "vague-literal", Category: catalog.CategoryNonTestable, Weight: 30,
			Message: "c '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerLiteral, Literals: []string{"fast"}},
		},
	}
	cat, err := catalog.New("test", rules)
	require.NoError(t, err)

	text := "The page is fast"
	findings := DetectAmbiguity(text, tokenize(t, text), cat)

	require.Len(t, findings, 2)
	assert.ElementsMatch(t,
		[]catalog.Category{catalog.CategorySubjectiveTerm, catalog.CategoryNonTestable},
		categories(findings))
}

func TestDetectAmbiguity_TokenFreeInput(t *testing.T) {
	// Punctuation-only text annotates to zero tokens, but regex triggers
	// still run against the raw text. Detection must stay total: no rule
	// kind on any category may panic when there is no token under a match.
	text := "?? !!"
	tokens := tokenize(t, text)
	require.Empty(t, tokens)

	assert.Empty(t, DetectAmbiguity(text, tokens, catalog.Default()))
	assert.Empty(t, DetectAssumptions(text, tokens, catalog.Default()))

	rules := []catalog.Rule{
		{
			Name: "ref-regex", Category: catalog.CategoryUndefinedReference, Weight: 25,
			Message: "unclear '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerRegex, Pattern: regexp.MustCompile(`\?\?`)},
		},
		{
			Name: "vague-regex", Category: catalog.CategoryNonTestable, Weight: 30,
			Message: "vague '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerRegex, Pattern: regexp.MustCompile(`!!`)},
		},
		{
			Name: "data-regex", Category: catalog.CategoryData, Weight: 25,
			Message: "assumed '{match}'",
			Trigger: catalog.Trigger{Kind: catalog.TriggerRegex, Pattern: regexp.MustCompile(`!!`)},
		},
	}
	cat, err := catalog.New("punct", rules)
	require.NoError(t, err)

	findings := DetectAmbiguity(text, tokens, cat)
	require.Len(t, findings, 2)

	// A reference match with no underlying token has no antecedent and is
	// reported.
	ref := findByCategory(t, findings, catalog.CategoryUndefinedReference)
	assert.Equal(t, "??", ref.Text)
	assert.Equal(t, ref.Text, text[ref.Start:ref.End])

	vague := findByCategory(t, findings, catalog.CategoryNonTestable)
	assert.Equal(t, "!!", vague.Text)

	assumptions := DetectAssumptions(text, tokens, cat)
	require.Len(t, assumptions, 1)
	assert.Equal(t, catalog.CategoryData, assumptions[0].Category)
}

func TestDetectAmbiguity_CleanText(t *testing.T) {
	text := "The login page displays the username field within 2 seconds."
	findings := DetectAmbiguity(text, tokenize(t, text), catalog.Default())
	assert.Empty(t, findings)
}
