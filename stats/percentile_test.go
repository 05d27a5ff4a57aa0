package stats_test

import (
	"github.com/hscells/incomegroup/stats"
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	incomes := []float64{50000, 20000, 40000, 60000, 30000}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 20000},
		{0.25, 30000},
		{0.33, 33200},
		{0.5, 40000},
		{0.66, 46400},
		{1, 60000},
	}

	for _, test := range tests {
		got, err := stats.Percentile(incomes, test.p)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-test.want) > 1e-6 {
			t.Errorf("percentile %v: got %v, want %v", test.p, got, test.want)
		}
	}

	// The input must be left as it was given.
	if incomes[0] != 50000 || incomes[4] != 30000 {
		t.Errorf("input was reordered: %v", incomes)
	}
}

func TestPercentileSingleValue(t *testing.T) {
	got, err := stats.Percentile([]float64{42}, 0.66)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestPercentileErrors(t *testing.T) {
	if _, err := stats.Percentile(nil, 0.5); err != stats.ErrEmptyReferenceSet {
		t.Errorf("expected empty reference set error, got %v", err)
	}
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := stats.Percentile([]float64{1, 2, 3}, p)
		if !stats.IsInvalidInput(err) {
			t.Errorf("percentile %v: expected invalid input, got %v", p, err)
		}
	}
	if _, err := stats.Percentile([]float64{1, math.NaN()}, 0.5); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for NaN values, got %v", err)
	}
}

func TestMean(t *testing.T) {
	m, err := stats.Mean([]float64{20000, 22000})
	if err != nil {
		t.Fatal(err)
	}
	if m != 21000 {
		t.Errorf("got %v, want 21000", m)
	}
	if _, err := stats.Mean(nil); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestCheckIncome(t *testing.T) {
	for _, income := range []float64{0, 40000, 1e9} {
		if err := stats.CheckIncome(income); err != nil {
			t.Errorf("CheckIncome(%v) = %v", income, err)
		}
	}
	for _, income := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := stats.CheckIncome(income); !stats.IsInvalidInput(err) {
			t.Errorf("CheckIncome(%v): expected invalid input, got %v", income, err)
		}
	}
}
