package analysis

import (
	"strings"

	"github.com/c360studio/readyspec/catalog"
)

// maxSuggestions caps the question list so a noisy input does not overwhelm
// the requirement author.
const maxSuggestions = 8

// Suggest maps findings to clarification questions. One suggestion is
// generated per distinct (category, matched text) pair; output is ordered by
// axis (Ambiguity before Assumption), then by the originating finding's
// position in the source text. The input must already be in source order
// (sortFindings); the ordering is then deterministic for identical input.
func Suggest(findings []Finding) []string {
	var suggestions []string
	seenPair := map[suggestKey]struct{}{}
	seenText := map[string]struct{}{}

	for _, axis := range []catalog.Axis{catalog.AxisAmbiguity, catalog.AxisAssumption} {
		for _, f := range findings {
			if f.Axis != axis {
				continue
			}
			key := suggestKey{category: f.Category, match: strings.ToLower(f.Text)}
			if _, dup := seenPair[key]; dup {
				continue
			}
			seenPair[key] = struct{}{}

			for _, q := range f.questions {
				if _, dup := seenText[q]; dup {
					continue
				}
				seenText[q] = struct{}{}
				suggestions = append(suggestions, q)
				if len(suggestions) == maxSuggestions {
					return suggestions
				}
			}
		}
	}
	return suggestions
}

type suggestKey struct {
	category catalog.Category
	match    string
}
