package analysis

import (
	"github.com/c360studio/readyspec/annotate"
	"github.com/c360studio/readyspec/catalog"
)

// DetectAmbiguity scans annotated text against the catalog's ambiguity rules
// and returns one Finding per match. Matches already satisfied by the rule's
// satisfier (e.g. a quantified threshold in the same sentence) are
// suppressed. Exact duplicates of the same category and span collapse to one
// Finding; overlapping matches across categories do not.
func DetectAmbiguity(text string, tokens []annotate.Token, cat *catalog.Catalog) []Finding {
	var findings []Finding
	seen := map[findingKey]struct{}{}

	for _, rule := range cat.RulesFor(catalog.AxisAmbiguity) {
		for _, m := range matchTrigger(text, tokens, rule.Trigger) {
			if rule.Category == catalog.CategoryUndefinedReference && hasAntecedent(tokens, m.firstToken) {
				continue
			}
			if satisfied(text, tokens, rule, m) {
				continue
			}
			appendFinding(&findings, seen, rule, m)
		}
	}
	return findings
}

// hasAntecedent applies the same-sentence antecedent heuristic for pronoun
// references. A reference is resolvable when the pronoun is used as a
// determiner ("this button") or when the nearest preceding token in the
// sentence that could serve as an antecedent is a noun. This is a deliberate
// lexical shortcut, not coreference resolution.
func hasAntecedent(tokens []annotate.Token, at int) bool {
	// Regex triggers can match text that annotates to no tokens at all
	// (punctuation-only input). With nothing to resolve against, the
	// reference counts as unresolved and the finding stands.
	if at < 0 || at >= len(tokens) {
		return false
	}

	tok := tokens[at]
	if tok.POS != annotate.POSPronoun {
		return true
	}

	// Determiner use: demonstrative directly modifying a noun.
	if at+1 < len(tokens) {
		next := tokens[at+1]
		if next.Sentence == tok.Sentence &&
			(next.POS == annotate.POSNoun || next.POS == annotate.POSAdjective) {
			return true
		}
	}

	// Nearest preceding noun-or-pronoun in the same sentence decides.
	for i := at - 1; i >= 0; i-- {
		prev := tokens[i]
		if prev.Sentence != tok.Sentence {
			break
		}
		switch prev.POS {
		case annotate.POSNoun:
			return true
		case annotate.POSPronoun:
			return false
		}
	}
	return false
}

// findingKey collapses exact duplicate matches of one category and span.
type findingKey struct {
	category   catalog.Category
	start, end int
}

func appendFinding(findings *[]Finding, seen map[findingKey]struct{}, rule catalog.Rule, m span) {
	key := findingKey{category: rule.Category, start: m.start, end: m.end}
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}

	*findings = append(*findings, Finding{
		Category:  rule.Category,
		Axis:      rule.Axis(),
		Text:      m.text,
		Start:     m.start,
		End:       m.end,
		Message:   rule.RenderMessage(m.text),
		Weight:    rule.Weight,
		sentence:  m.sentence,
		questions: rule.RenderQuestions(m.text),
	})
}
