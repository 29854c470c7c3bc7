package analysis

import (
	"math"

	"github.com/c360studio/readyspec/catalog"
)

// Score aggregates findings into the bounded axis scores and the readiness
// verdict. Each axis score is the saturating sum of its findings' weights,
// clamped to [0, 100]; the readiness score is
//
//	readiness = 100 - (ambiguity + assumption) / 2
//
// clamped to the same range. Summation is associative and commutative, so
// finding order never affects the result. Zero findings yield readiness 100.
func Score(findings []Finding) ScoreResult {
	var ambiguity, assumption float64
	for _, f := range findings {
		switch f.Axis {
		case catalog.AxisAssumption:
			assumption += f.Weight
		default:
			ambiguity += f.Weight
		}
	}

	ambiguity = clamp(ambiguity)
	assumption = clamp(assumption)
	readiness := clamp(100 - (ambiguity+assumption)/2)

	return ScoreResult{
		AmbiguityScore:  round1(ambiguity),
		AssumptionScore: round1(assumption),
		ReadinessScore:  round1(readiness),
		ReadinessLevel:  Classify(readiness),
	}
}

// Classify maps a readiness score to its level: >=70 ready, >=40 needs
// clarification, below that high risk.
func Classify(readiness float64) ReadinessLevel {
	switch {
	case readiness >= 70:
		return ReadinessReady
	case readiness >= 40:
		return ReadinessNeedsClarification
	default:
		return ReadinessHighRisk
	}
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// round1 rounds to the one decimal of precision the result surface exposes.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
