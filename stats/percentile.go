// Package stats provides the descriptive statistics used to derive income groups and cluster summaries.
package stats

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

var (
	// ErrInvalidInput is returned when a statistic is asked for with arguments it cannot be computed from.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyReferenceSet is returned when there are no values to compute a statistic from.
	ErrEmptyReferenceSet = errors.New("empty reference set")
)

// IsInvalidInput reports whether err was caused by invalid input, which includes an empty reference set.
func IsInvalidInput(err error) bool {
	switch errors.Cause(err) {
	case ErrInvalidInput, ErrEmptyReferenceSet:
		return true
	}
	return false
}

// CheckIncome returns ErrInvalidInput unless income is a finite, non-negative number.
func CheckIncome(income float64) error {
	if income < 0 || math.IsNaN(income) || math.IsInf(income, 0) {
		return errors.Wrapf(ErrInvalidInput, "income must be a non-negative number, got %v", income)
	}
	return nil
}

// Percentile computes the p-th percentile (p in [0, 1]) of values, linearly interpolating between the two closest
// order statistics at position p*(n-1). The values slice is not modified.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyReferenceSet
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, errors.Wrapf(ErrInvalidInput, "percentile %v is outside [0, 1]", p)
	}
	if floats.HasNaN(values) {
		return 0, errors.Wrap(ErrInvalidInput, "reference set contains NaN")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Mean is the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyReferenceSet
	}
	return stat.Mean(values, nil), nil
}
