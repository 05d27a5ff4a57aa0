// Package eval scores fitted clustering models, both internally (how compact and separated the clusters are) and
// against the rule-based income groups.
package eval

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
)

// Evaluator is an interface for scoring a model fitted to points. groups holds the income group of each point, in the
// same order.
type Evaluator interface {
	Score(m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) float64
	Name() string
}

// Evaluate scores a model using supplied evaluation measures.
func Evaluate(evaluators []Evaluator, m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(m, points, groups)
	}
	return scores
}
