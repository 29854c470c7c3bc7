package catalog

import "regexp"

// Default weights. Catalog files may override any of these; detectors never
// see them directly — they read weights from the rule that matched.
const (
	defaultWeightSubjective  = 15
	defaultWeightModality    = 20
	defaultWeightReference   = 25
	defaultWeightNonTestable = 30
	defaultWeightEnvironment = 20
	defaultWeightData        = 25
	defaultWeightState       = 25
)

// quantifierUnits are unit lemmas that, preceded by a number, mark a
// statement as already quantified ("2 seconds", "500 ms", "99.9 percent").
var quantifierUnits = []string{
	"ms", "millisecond", "second", "sec", "minute", "hour", "day",
	"percent", "px", "pixel", "kb", "mb", "gb",
	"user", "request", "transaction", "operation", "fps", "time",
}

// Default returns the pinned built-in catalog. It is rebuilt on every call so
// callers can never mutate a shared instance.
func Default() *Catalog {
	rules := []Rule{
		{
			Name:     "subjective-term",
			Category: CategorySubjectiveTerm,
			Weight:   defaultWeightSubjective,
			Message:  "Subjective term '{match}' lacks a specific, measurable criterion",
			Questions: []string{
				"What measurable threshold defines '{match}'?",
			},
			Trigger: Trigger{
				Kind: TriggerLemma,
				Lemmas: []string{
					"fast", "slow", "quick", "rapid", "secure", "safe",
					"scalable", "optimal", "efficient", "user-friendly",
					"intuitive", "robust", "reliable", "stable", "flexible",
					"portable", "compatible", "accessible", "responsive",
					"smooth", "seamless", "clean", "proper", "correct",
					"appropriate", "adequate", "sufficient", "easy", "simple",
				},
			},
			Satisfier:      &Trigger{Kind: TriggerQuantifier, Lemmas: quantifierUnits},
			SatisfierScope: ScopeSentence,
		},
		{
			Name:     "weak-modality",
			Category: CategoryWeakModality,
			Weight:   defaultWeightModality,
			Message:  "Weak or optional requirement term: '{match}'",
			Questions: []string{
				"Is '{match}' a mandatory requirement or optional behavior?",
			},
			Trigger: Trigger{
				Kind: TriggerLiteral,
				Literals: []string{
					"should", "could", "might", "may",
					"if possible", "when possible", "as needed",
					"when necessary", "ideally", "preferably",
					"probably", "perhaps", "maybe",
				},
			},
		},
		{
			Name:     "undefined-reference",
			Category: CategoryUndefinedReference,
			Weight:   defaultWeightReference,
			Message:  "Reference '{match}' has no clear antecedent",
			Questions: []string{
				"What specific element or condition does '{match}' refer to?",
			},
			Trigger: Trigger{
				Kind:   TriggerLemma,
				Lemmas: []string{"it", "this", "that", "these", "those", "they", "them"},
			},
		},
		{
			Name:     "non-testable-phrase",
			Category: CategoryNonTestable,
			Weight:   defaultWeightNonTestable,
			Message:  "Non-testable requirement: '{match}'",
			Questions: []string{
				"What specific, observable behavior verifies '{match}'?",
			},
			Trigger: Trigger{
				Kind: TriggerPhrase,
				Phrases: [][]string{
					{"handle", "error", "properly"},
					{"handle", "properly"},
					{"work", "correctly"},
					{"work", "as", "expect"},
					{"function", "properly"},
					{"function", "as", "expect"},
					{"behave", "correctly"},
					{"perform", "properly"},
					{"process", "correctly"},
				},
			},
		},
		{
			Name:     "non-testable-openend",
			Category: CategoryNonTestable,
			Weight:   defaultWeightNonTestable,
			Message:  "Open-ended requirement: '{match}'",
			Questions: []string{
				"What is the complete, finite list behind '{match}'?",
			},
			Trigger: Trigger{
				Kind:    TriggerRegex,
				Pattern: regexp.MustCompile(`(?i)\b(etc\.?|and so on|as appropriate|if applicable)\b`),
			},
		},
		{
			Name:     "environment-assumption",
			Category: CategoryEnvironment,
			Weight:   defaultWeightEnvironment,
			Message:  "Environment '{match}' is referenced without stating which environments are covered",
			Questions: []string{
				"Which '{match}' versions or variants must this work on?",
			},
			Trigger: Trigger{
				Kind: TriggerLemma,
				Lemmas: []string{
					"browser", "chrome", "firefox", "safari", "edge",
					"mobile", "desktop", "tablet", "ios", "android",
					"windows", "mac", "linux", "device", "network", "os",
				},
			},
			Satisfier: &Trigger{
				Kind:     TriggerLiteral,
				Literals: []string{"any", "all", "every", "each", "supported", "specified", "latest"},
			},
			SatisfierScope: ScopeSentence,
		},
		{
			Name:     "data-assumption",
			Category: CategoryData,
			Weight:   defaultWeightData,
			Message:  "'{match}' is presumed to exist without a setup step establishing it",
			Questions: []string{
				"What setup step provides '{match}' before this runs?",
			},
			Trigger: Trigger{
				Kind: TriggerPhrase,
				Phrases: [][]string{
					{"valid", "user"},
					{"test", "user"},
					{"test", "account"},
					{"test", "data"},
					{"valid", "credential"},
					{"valid", "password"},
					{"existing", "record"},
					{"existing", "account"},
				},
			},
			Satisfier: &Trigger{
				Kind: TriggerLemma,
				Lemmas: []string{
					"create", "prepare", "give", "precondition", "seed",
					"register", "provision", "establish", "assume", "setup",
				},
			},
			SatisfierScope: ScopeBefore,
		},
		{
			Name:     "state-assumption",
			Category: CategoryState,
			Weight:   defaultWeightState,
			Message:  "Prior state '{match}' is asserted without being established earlier",
			Questions: []string{
				"How is the precondition '{match}' established before this step?",
			},
			Trigger: Trigger{
				Kind: TriggerPhrase,
				Phrases: [][]string{
					{"be", "log", "in"},
					{"already", "log", "in"},
					{"be", "sign", "in"},
					{"be", "enable"},
					{"feature", "enable"},
					{"be", "grant"},
					{"permission", "grant"},
					{"be", "authenticate"},
					{"as", "admin"},
					{"as", "administrator"},
				},
			},
			Satisfier: &Trigger{
				Kind: TriggerLemma,
				Lemmas: []string{
					"give", "precondition", "prerequisite", "assume",
					"setup", "first", "once", "after",
				},
			},
			SatisfierScope: ScopeBefore,
		},
	}

	c, err := New("builtin-1", rules)
	if err != nil {
		// The built-in catalog is covered by tests; failing to build it is a
		// programming error.
		panic("catalog: invalid built-in catalog: " + err.Error())
	}
	return c
}
