// Package catalog holds the pattern catalog: the versioned, reloadable table
// of detection rules the analysis engine matches against. A Catalog is
// immutable once built; reloading produces a new Catalog that is swapped in
// atomically (see Store), so in-flight analyses always see one consistent
// rule set.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Axis is one of the two independent scoring dimensions.
type Axis string

// Scoring axes.
const (
	AxisAmbiguity  Axis = "ambiguity"
	AxisAssumption Axis = "assumption"
)

// Category identifies a detection category. The values are the externally
// visible issue type strings.
type Category string

// Detection categories.
const (
	CategorySubjectiveTerm     Category = "Subjective term"
	CategoryWeakModality       Category = "Weak modality"
	CategoryUndefinedReference Category = "Undefined reference"
	CategoryNonTestable        Category = "Non-testable statement"
	CategoryEnvironment        Category = "Environment assumption"
	CategoryData               Category = "Data assumption"
	CategoryState              Category = "State assumption"
)

// Axis returns the scoring axis a category contributes to.
func (c Category) Axis() Axis {
	switch c {
	case CategoryEnvironment, CategoryData, CategoryState:
		return AxisAssumption
	default:
		return AxisAmbiguity
	}
}

func validCategory(c Category) bool {
	switch c {
	case CategorySubjectiveTerm, CategoryWeakModality, CategoryUndefinedReference,
		CategoryNonTestable, CategoryEnvironment, CategoryData, CategoryState:
		return true
	}
	return false
}

// TriggerKind selects the matcher a trigger uses. Detectors dispatch on the
// kind and iterate a uniform rule list regardless of category.
type TriggerKind string

// Trigger matcher kinds.
const (
	// TriggerLiteral matches lower-cased surface forms, including multiword
	// phrases ("if possible").
	TriggerLiteral TriggerKind = "literal"

	// TriggerLemma matches single-token lemmas.
	TriggerLemma TriggerKind = "lemma"

	// TriggerPhrase matches contiguous lemma sequences, tolerant of
	// inflection ("handles errors properly").
	TriggerPhrase TriggerKind = "phrase"

	// TriggerRegex matches a regular expression against the raw text.
	TriggerRegex TriggerKind = "regex"

	// TriggerQuantifier matches a number token immediately followed by a
	// unit lemma ("2 seconds"). Used by satisfiers that suppress
	// already-quantified statements.
	TriggerQuantifier TriggerKind = "quantifier"
)

// Scope limits where a satisfier pattern may occur relative to the trigger
// match.
type Scope string

// Satisfier scopes.
const (
	// ScopeSentence requires the satisfier within the trigger's sentence.
	ScopeSentence Scope = "sentence"

	// ScopeBefore requires the satisfier strictly earlier in the token
	// stream than the trigger match.
	ScopeBefore Scope = "before"
)

// Trigger is the lexical condition that causes a rule to match.
type Trigger struct {
	Kind     TriggerKind
	Literals []string   // TriggerLiteral: lower-cased phrases
	Lemmas   []string   // TriggerLemma, TriggerQuantifier: lemma set
	Phrases  [][]string // TriggerPhrase: lemma sequences
	Pattern  *regexp.Regexp
}

func (t Trigger) empty() bool {
	return len(t.Literals) == 0 && len(t.Lemmas) == 0 && len(t.Phrases) == 0 && t.Pattern == nil
}

// Rule pairs a trigger with its category, weight, and templates. An optional
// Satisfier suppresses the match when found within SatisfierScope.
type Rule struct {
	// Name identifies the rule in load errors and catalog listings.
	Name string

	Category Category
	Trigger  Trigger

	// Satisfier, when set, suppresses trigger matches that are already
	// satisfied (quantified thresholds, qualifying clauses, earlier setup
	// statements).
	Satisfier      *Trigger
	SatisfierScope Scope

	// Weight is added to the rule's axis score per finding.
	Weight float64

	// Message is the finding message template; "{match}" is replaced with
	// the matched text.
	Message string

	// Questions are clarification question templates, same placeholder.
	Questions []string
}

// Axis returns the rule's scoring axis.
func (r Rule) Axis() Axis { return r.Category.Axis() }

// RenderMessage instantiates the message template for a match.
func (r Rule) RenderMessage(match string) string {
	return strings.ReplaceAll(r.Message, "{match}", match)
}

// RenderQuestions instantiates the question templates for a match.
func (r Rule) RenderQuestions(match string) []string {
	out := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		out = append(out, strings.ReplaceAll(q, "{match}", match))
	}
	return out
}

func (r Rule) validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule has no name")
	}
	if !validCategory(r.Category) {
		return fmt.Errorf("rule %q: unknown category %q", r.Name, r.Category)
	}
	if r.Weight <= 0 {
		return fmt.Errorf("rule %q: weight must be positive, got %v", r.Name, r.Weight)
	}
	if r.Trigger.empty() {
		return fmt.Errorf("rule %q: trigger has no literals, lemmas, phrases, or pattern", r.Name)
	}
	if r.Message == "" {
		return fmt.Errorf("rule %q: message template is required", r.Name)
	}
	if r.Satisfier != nil {
		if r.Satisfier.empty() {
			return fmt.Errorf("rule %q: satisfier has no patterns", r.Name)
		}
		if r.SatisfierScope != ScopeSentence && r.SatisfierScope != ScopeBefore {
			return fmt.Errorf("rule %q: satisfier scope must be %q or %q, got %q",
				r.Name, ScopeSentence, ScopeBefore, r.SatisfierScope)
		}
	}
	return nil
}

// Catalog is an immutable rule table. Construct with New, Parse, Load, or
// Default; share freely across concurrent analyses.
type Catalog struct {
	version string
	rules   []Rule
	byAxis  map[Axis][]Rule
}

// New builds a catalog from rules, validating every rule. The first invalid
// rule aborts the build with an error naming it.
func New(version string, rules []Rule) (*Catalog, error) {
	byAxis := make(map[Axis][]Rule, 2)
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		byAxis[r.Axis()] = append(byAxis[r.Axis()], r)
	}
	return &Catalog{version: version, rules: rules, byAxis: byAxis}, nil
}

// Version returns the catalog version string.
func (c *Catalog) Version() string { return c.version }

// Rules returns all rules in declaration order.
func (c *Catalog) Rules() []Rule { return c.rules }

// RulesFor returns the rules contributing to one axis, in declaration order.
func (c *Catalog) RulesFor(axis Axis) []Rule { return c.byAxis[axis] }
