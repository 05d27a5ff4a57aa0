package eval

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"gonum.org/v1/gonum/floats"
	"math"
)

type inertia struct{}
type silhouette struct{}
type purity struct{}
type randIndex struct{}

var (
	// Inertia is the sum of squared distances of points to their centroid.
	Inertia = inertia{}
	// Silhouette is the mean silhouette coefficient of all points.
	Silhouette = silhouette{}
	// Purity is the fraction of points that share the most common income group of their cluster.
	Purity = purity{}
	// RandIndex is the fraction of pairs of points that clusters and income groups agree on.
	RandIndex = randIndex{}

	// Evaluators lists every measure.
	Evaluators = []Evaluator{Inertia, Silhouette, Purity, RandIndex}
)

func (inertia) Name() string {
	return "Inertia"
}

func (inertia) Score(m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) float64 {
	return m.Inertia
}

func (silhouette) Name() string {
	return "Silhouette"
}

// Score is zero for a point that is alone in its cluster.
func (silhouette) Score(m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) float64 {
	if len(points) == 0 || len(points) != len(m.Labels) {
		return 0
	}

	total := 0.0
	for i, p := range points {
		sums := make([]float64, m.K)
		counts := make([]float64, m.K)
		for j, q := range points {
			if i == j {
				continue
			}
			sums[m.Labels[j]] += floats.Distance(p, q, 2)
			counts[m.Labels[j]]++
		}

		own := m.Labels[i]
		if counts[own] == 0 {
			continue
		}
		a := sums[own] / counts[own]
		b := math.Inf(1)
		for c := range sums {
			if c != own && counts[c] > 0 {
				b = math.Min(b, sums[c]/counts[c])
			}
		}
		if math.IsInf(b, 1) {
			continue
		}
		if d := math.Max(a, b); d > 0 {
			total += (b - a) / d
		}
	}
	return total / float64(len(points))
}

func (purity) Name() string {
	return "Purity"
}

func (purity) Score(m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) float64 {
	if len(groups) == 0 || len(groups) != len(m.Labels) {
		return 0
	}

	counts := make([]map[classify.IncomeGroup]int, m.K)
	for i := range counts {
		counts[i] = make(map[classify.IncomeGroup]int)
	}
	for i, label := range m.Labels {
		counts[label][groups[i]]++
	}

	majority := 0
	for _, c := range counts {
		best := 0
		for _, n := range c {
			if n > best {
				best = n
			}
		}
		majority += best
	}
	return float64(majority) / float64(len(groups))
}

func (randIndex) Name() string {
	return "RandIndex"
}

func (randIndex) Score(m *cluster.Model, points [][]float64, groups []classify.IncomeGroup) float64 {
	n := len(groups)
	if n < 2 || n != len(m.Labels) {
		return 0
	}

	agree, pairs := 0.0, 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sameCluster := m.Labels[i] == m.Labels[j]
			sameGroup := groups[i] == groups[j]
			if sameCluster == sameGroup {
				agree++
			}
			pairs++
		}
	}
	return agree / pairs
}
