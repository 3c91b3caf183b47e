package questionnaire

import (
	"math"
	"time"
)

// Complexity buckets.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "modere"
	ComplexityComplex  = "complexe"
)

// Complexity scores the questionnaire from its question and section counts
// plus the presence of conditional branching. The thresholds are heuristic;
// they shape a categorical label, not a business rule.
func (q *Questionnaire) Complexity() string {
	score := len(q.Questions) + 2*len(q.Sections)
	if q.hasGotoLogic() {
		score += 10
	}
	switch {
	case score <= 10:
		return ComplexitySimple
	case score <= 30:
		return ComplexityModerate
	default:
		return ComplexityComplex
	}
}

// PopularityScore blends usage count, feedback average, and a recency decay
// on the last usage. Like Complexity, the weights are illustrative: they are
// kept stable for API compatibility, not because the constants carry
// business meaning.
func (q *Questionnaire) PopularityScore(now time.Time) float64 {
	usage := math.Min(float64(q.UtiliseCompte)/100, 1) * 50
	feedback := q.FeedbackMoyen / 5 * 30
	recency := 0.0
	if q.DernierUsage != nil {
		days := now.Sub(*q.DernierUsage).Hours() / 24
		if days < 0 {
			days = 0
		}
		recency = math.Max(0, 1-days/90) * 20
	}
	return math.Round((usage+feedback+recency)*100) / 100
}

func (q *Questionnaire) hasGotoLogic() bool {
	for _, qq := range q.Questions {
		for _, opt := range qq.Options {
			if opt.Goto != "" {
				return true
			}
		}
	}
	return false
}
