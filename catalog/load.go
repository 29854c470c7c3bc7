package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSchema is the YAML layout of a catalog file.
//
//	version: "team-2026-08"
//	rules:
//	  - name: subjective-term
//	    category: Subjective term
//	    weight: 15
//	    message: "Subjective term '{match}' lacks a measurable criterion"
//	    questions:
//	      - "What measurable threshold defines '{match}'?"
//	    trigger:
//	      kind: lemma
//	      lemmas: [fast, slow, secure]
//	    satisfier:
//	      kind: quantifier
//	      lemmas: [second, ms, percent]
//	    scope: sentence
type fileSchema struct {
	Version string       `yaml:"version"`
	Rules   []ruleSchema `yaml:"rules"`
}

type ruleSchema struct {
	Name      string         `yaml:"name"`
	Category  string         `yaml:"category"`
	Weight    float64        `yaml:"weight"`
	Message   string         `yaml:"message"`
	Questions []string       `yaml:"questions"`
	Trigger   triggerSchema  `yaml:"trigger"`
	Satisfier *triggerSchema `yaml:"satisfier"`
	Scope     string         `yaml:"scope"`
}

type triggerSchema struct {
	Kind     string   `yaml:"kind"`
	Literals []string `yaml:"literals"`
	Lemmas   []string `yaml:"lemmas"`
	// Phrases are space-separated lemma sequences ("handle error properly").
	Phrases []string `yaml:"phrases"`
	Pattern string   `yaml:"pattern"`
}

// Load reads and validates a catalog file. Any malformed rule fails the whole
// load with an error naming it; the caller's active catalog stays in effect.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("catalog contains no rules")
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, rs := range file.Rules {
		rule, err := compileRule(i, rs)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return New(file.Version, rules)
}

func compileRule(index int, rs ruleSchema) (Rule, error) {
	name := rs.Name
	if name == "" {
		name = fmt.Sprintf("rule[%d]", index)
	}

	trigger, err := compileTrigger(name, rs.Trigger)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{
		Name:      name,
		Category:  Category(rs.Category),
		Trigger:   trigger,
		Weight:    rs.Weight,
		Message:   rs.Message,
		Questions: rs.Questions,
	}

	if rs.Satisfier != nil {
		sat, err := compileTrigger(name+" satisfier", *rs.Satisfier)
		if err != nil {
			return Rule{}, err
		}
		rule.Satisfier = &sat
		rule.SatisfierScope = Scope(rs.Scope)
		if rule.SatisfierScope == "" {
			// Assumption rules default to look-behind; everything else to
			// same-sentence suppression.
			if rule.Category.Axis() == AxisAssumption {
				rule.SatisfierScope = ScopeBefore
			} else {
				rule.SatisfierScope = ScopeSentence
			}
		}
	}

	return rule, nil
}

func compileTrigger(name string, ts triggerSchema) (Trigger, error) {
	trigger := Trigger{
		Kind:     TriggerKind(ts.Kind),
		Literals: lowerAll(ts.Literals),
		Lemmas:   lowerAll(ts.Lemmas),
	}

	switch trigger.Kind {
	case TriggerLiteral, TriggerLemma, TriggerQuantifier:
	case TriggerPhrase:
		for _, p := range ts.Phrases {
			fields := strings.Fields(strings.ToLower(p))
			if len(fields) == 0 {
				return Trigger{}, fmt.Errorf("rule %q: empty phrase", name)
			}
			trigger.Phrases = append(trigger.Phrases, fields)
		}
	case TriggerRegex:
		if ts.Pattern == "" {
			return Trigger{}, fmt.Errorf("rule %q: regex trigger has no pattern", name)
		}
		re, err := regexp.Compile(ts.Pattern)
		if err != nil {
			return Trigger{}, fmt.Errorf("rule %q: bad pattern %q: %w", name, ts.Pattern, err)
		}
		trigger.Pattern = re
	default:
		return Trigger{}, fmt.Errorf("rule %q: unknown trigger kind %q", name, ts.Kind)
	}

	return trigger, nil
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
