// Package analysis implements the readyspec detection and scoring engine:
// pattern-driven ambiguity and assumption detectors over annotated tokens, a
// bounded readiness scorer, and a clarification question generator. Every
// entry point is a pure function of (input text, catalog snapshot); the
// package holds no mutable state.
package analysis

import (
	"sort"

	"github.com/c360studio/readyspec/catalog"
)

// Finding is a single detected issue: its category, location in the source
// text, rendered message, and the weight copied from the rule at match time.
// Findings are never mutated after creation; a later catalog reload cannot
// retroactively change them.
type Finding struct {
	Category catalog.Category `json:"type"`
	Axis     catalog.Axis     `json:"axis"`

	// Text is the matched source text, Start/End its byte span.
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	Message string  `json:"message"`
	Weight  float64 `json:"weight"`

	// sentence orders findings; questions carry the rendered clarification
	// templates so Suggest needs no catalog access.
	sentence  int
	questions []string
}

// ReadinessLevel is the three-way automation-readiness classification.
type ReadinessLevel string

// Readiness levels, using the externally visible strings.
const (
	ReadinessReady              ReadinessLevel = "Ready for automation"
	ReadinessNeedsClarification ReadinessLevel = "Needs clarification"
	ReadinessHighRisk           ReadinessLevel = "High risk for automation"
)

// ScoreResult holds the three bounded scores and the derived classification.
type ScoreResult struct {
	AmbiguityScore  float64        `json:"ambiguity_score"`
	AssumptionScore float64        `json:"assumption_score"`
	ReadinessScore  float64        `json:"readiness_score"`
	ReadinessLevel  ReadinessLevel `json:"readiness_level"`
}

// Result is the externally visible outcome of one analysis. Issues are
// ordered by sentence then character offset; Suggestions by axis then source
// position. Results are immutable and carry no state beyond the single call.
type Result struct {
	ID string `json:"id"`

	ScoreResult

	Issues      []Finding `json:"issues"`
	Suggestions []string  `json:"suggestions"`

	// CatalogVersion records the catalog snapshot that produced the result.
	CatalogVersion string `json:"catalog_version"`
}

// sortFindings orders findings by sentence index, then start offset, then
// category for a stable tie-break.
func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].sentence != findings[j].sentence {
			return findings[i].sentence < findings[j].sentence
		}
		if findings[i].Start != findings[j].Start {
			return findings[i].Start < findings[j].Start
		}
		return findings[i].Category < findings[j].Category
	})
}
