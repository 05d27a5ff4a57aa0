// Package lookup finds the income of the records closest in age to a given age.
package lookup

import (
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/stats"
)

// Match is the outcome of a nearest-age lookup.
type Match struct {
	// Age is the age of the contributing records.
	Age int `json:"age"`
	// Income is the mean income of the contributing records.
	Income float64 `json:"income"`
	// Count is the number of contributing records.
	Count int `json:"count"`
	// Exact is false when no record had the requested age and the closest age was used instead.
	Exact bool `json:"exact"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Nearest averages the incomes of the records whose age is closest to target. When two ages are equally close, the
// smaller age is used.
func Nearest(target int, ds dataset.Dataset) (Match, error) {
	if ds.Len() == 0 {
		return Match{}, stats.ErrEmptyReferenceSet
	}

	best := ds.Records[0].Age
	for _, r := range ds.Records[1:] {
		d, bd := abs(r.Age-target), abs(best-target)
		if d < bd || (d == bd && r.Age < best) {
			best = r.Age
		}
	}

	var incomes []float64
	for _, r := range ds.Records {
		if r.Age == best {
			incomes = append(incomes, r.Income)
		}
	}
	mean, err := stats.Mean(incomes)
	if err != nil {
		return Match{}, err
	}
	return Match{
		Age:    best,
		Income: mean,
		Count:  len(incomes),
		Exact:  best == target,
	}, nil
}
