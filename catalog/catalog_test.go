package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()

	require.NotEmpty(t, c.Rules())
	assert.Equal(t, "builtin-1", c.Version())

	// Both axes are populated.
	assert.NotEmpty(t, c.RulesFor(AxisAmbiguity))
	assert.NotEmpty(t, c.RulesFor(AxisAssumption))

	for _, r := range c.Rules() {
		assert.NoError(t, r.validate(), "rule %q", r.Name)
	}
}

func TestDefault_SpecWeights(t *testing.T) {
	c := Default()

	want := map[Category]float64{
		CategorySubjectiveTerm:     15,
		CategoryWeakModality:       20,
		CategoryUndefinedReference: 25,
		CategoryNonTestable:        30,
	}

	for _, r := range c.RulesFor(AxisAmbiguity) {
		assert.Equal(t, want[r.Category], r.Weight, "rule %q", r.Name)
	}
}

func TestDefault_ReturnsFreshInstance(t *testing.T) {
	a, b := Default(), Default()
	require.NotSame(t, a, b)
	assert.Equal(t, len(a.Rules()), len(b.Rules()))
}

func TestCategory_Axis(t *testing.T) {
	assert.Equal(t, AxisAmbiguity, CategorySubjectiveTerm.Axis())
	assert.Equal(t, AxisAmbiguity, CategoryWeakModality.Axis())
	assert.Equal(t, AxisAmbiguity, CategoryUndefinedReference.Axis())
	assert.Equal(t, AxisAmbiguity, CategoryNonTestable.Axis())
	assert.Equal(t, AxisAssumption, CategoryEnvironment.Axis())
	assert.Equal(t, AxisAssumption, CategoryData.Axis())
	assert.Equal(t, AxisAssumption, CategoryState.Axis())
}

func TestRule_RenderTemplates(t *testing.T) {
	r := Rule{
		Message:   "Subjective term '{match}' lacks a measurable criterion",
		Questions: []string{"What threshold defines '{match}'?"},
	}

	assert.Equal(t, "Subjective term 'fast' lacks a measurable criterion", r.RenderMessage("fast"))
	assert.Equal(t, []string{"What threshold defines 'fast'?"}, r.RenderQuestions("fast"))
}

func TestNew_RejectsInvalidRules(t *testing.T) {
	valid := Rule{
		Name:     "ok",
		Category: CategoryWeakModality,
		Weight:   10,
		Message:  "m",
		Trigger:  Trigger{Kind: TriggerLiteral, Literals: []string{"should"}},
	}

	tests := []struct {
		name    string
		mutate  func(*Rule)
		wantErr string
	}{
		{"missing weight", func(r *Rule) { r.Weight = 0 }, "weight must be positive"},
		{"negative weight", func(r *Rule) { r.Weight = -3 }, "weight must be positive"},
		{"unknown category", func(r *Rule) { r.Category = "Mystery" }, "unknown category"},
		{"empty trigger", func(r *Rule) { r.Trigger = Trigger{Kind: TriggerLiteral} }, "trigger has no"},
		{"missing message", func(r *Rule) { r.Message = "" }, "message template is required"},
		{"bad satisfier scope", func(r *Rule) {
			r.Satisfier = &Trigger{Kind: TriggerLemma, Lemmas: []string{"x"}}
			r.SatisfierScope = "everywhere"
		}, "satisfier scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			_, err := New("v", []Rule{r})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			// The error names the rule so operators can find it.
			assert.Contains(t, err.Error(), `"ok"`)
		})
	}
}
