package analysis

import (
	"github.com/c360studio/readyspec/annotate"
	"github.com/c360studio/readyspec/catalog"
)

// DetectAssumptions scans annotated text against the catalog's assumption
// rules. An assumption finding means a precondition is referenced but never
// established: the trigger matched and no satisfying pattern was found within
// the rule's scope (a qualifying clause in the same sentence, or a setup
// statement earlier in the text). Absence of assumption language produces
// nothing — only asserted-but-unestablished preconditions are penalized.
func DetectAssumptions(text string, tokens []annotate.Token, cat *catalog.Catalog) []Finding {
	var findings []Finding
	seen := map[findingKey]struct{}{}

	for _, rule := range cat.RulesFor(catalog.AxisAssumption) {
		for _, m := range matchTrigger(text, tokens, rule.Trigger) {
			if satisfied(text, tokens, rule, m) {
				continue
			}
			appendFinding(&findings, seen, rule, m)
		}
	}
	return findings
}
