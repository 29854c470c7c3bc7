package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/readyspec/catalog"
)

func ambiguityFinding(weight float64) Finding {
	return Finding{Category: catalog.CategoryWeakModality, Axis: catalog.AxisAmbiguity, Weight: weight}
}

func assumptionFinding(weight float64) Finding {
	return Finding{Category: catalog.CategoryData, Axis: catalog.AxisAssumption, Weight: weight}
}

func TestScore_NoFindings(t *testing.T) {
	got := Score(nil)
	assert.Equal(t, ScoreResult{
		AmbiguityScore:  0,
		AssumptionScore: 0,
		ReadinessScore:  100,
		ReadinessLevel:  ReadinessReady,
	}, got)
}

func TestScore_ReferenceWeights(t *testing.T) {
	// should (20) + fast (15) + handle errors properly (30) on the ambiguity
	// axis, nothing on the assumption axis.
	findings := []Finding{
		ambiguityFinding(20),
		ambiguityFinding(15),
		Finding{Category: catalog.CategoryNonTestable, Axis: catalog.AxisAmbiguity, Weight: 30},
	}
	got := Score(findings)

	assert.Equal(t, 65.0, got.AmbiguityScore)
	assert.Equal(t, 0.0, got.AssumptionScore)
	assert.Equal(t, 67.5, got.ReadinessScore)
	assert.Equal(t, ReadinessNeedsClarification, got.ReadinessLevel)
}

func TestScore_SingleAssumption(t *testing.T) {
	got := Score([]Finding{assumptionFinding(25)})

	assert.Equal(t, 0.0, got.AmbiguityScore)
	assert.Equal(t, 25.0, got.AssumptionScore)
	assert.Equal(t, 87.5, got.ReadinessScore)
	assert.Equal(t, ReadinessReady, got.ReadinessLevel)
}

func TestScore_ClampsAt100(t *testing.T) {
	var findings []Finding
	for i := 0; i < 10; i++ {
		findings = append(findings, ambiguityFinding(30), assumptionFinding(25))
	}
	got := Score(findings)

	assert.Equal(t, 100.0, got.AmbiguityScore)
	assert.Equal(t, 100.0, got.AssumptionScore)
	assert.Equal(t, 0.0, got.ReadinessScore)
	assert.Equal(t, ReadinessHighRisk, got.ReadinessLevel)
}

func TestScore_OrderIndependent(t *testing.T) {
	a := []Finding{ambiguityFinding(20), assumptionFinding(25), ambiguityFinding(15)}
	b := []Finding{assumptionFinding(25), ambiguityFinding(15), ambiguityFinding(20)}

	assert.Equal(t, Score(a), Score(b))
}

func TestScore_MoreFindingsNeverRaiseReadiness(t *testing.T) {
	findings := []Finding{ambiguityFinding(20)}
	prev := Score(findings).ReadinessScore
	for i := 0; i < 12; i++ {
		findings = append(findings, ambiguityFinding(15))
		next := Score(findings).ReadinessScore
		assert.LessOrEqual(t, next, prev)
		prev = next
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		readiness float64
		want      ReadinessLevel
	}{
		{100, ReadinessReady},
		{70, ReadinessReady},
		{69.9, ReadinessNeedsClarification},
		{40, ReadinessNeedsClarification},
		{39.9, ReadinessHighRisk},
		{0, ReadinessHighRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.readiness), "readiness %v", tt.readiness)
	}
}
