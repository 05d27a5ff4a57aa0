package classify_test

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/stats"
	"math"
	"sort"
	"testing"
)

var reference = []float64{20000, 30000, 40000, 50000, 60000}

func TestThresholds(t *testing.T) {
	th, err := classify.NewThresholds(reference)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(th.Low-33200) > 1e-6 || math.Abs(th.High-46400) > 1e-6 {
		t.Errorf("unexpected thresholds %+v", th)
	}

	tests := []struct {
		income float64
		want   classify.IncomeGroup
	}{
		{20000, classify.Low},
		{32000, classify.Low},
		{th.Low, classify.Low},
		{th.Low + 1, classify.Middle},
		{40000, classify.Middle},
		{th.High, classify.Middle},
		{th.High + 1, classify.High},
		{48000, classify.High},
		{49000, classify.High},
		{60000, classify.High},
	}
	for _, test := range tests {
		if got := th.Classify(test.income); got != test.want {
			t.Errorf("classify(%v) = %s, want %s", test.income, got, test.want)
		}
	}
}

func TestThresholdsCustomPercentiles(t *testing.T) {
	th, err := classify.NewThresholds(reference, classify.LowPercentile(0.3), classify.HighPercentile(0.7))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(th.Low-32000) > 1e-6 || math.Abs(th.High-48000) > 1e-6 {
		t.Fatalf("unexpected thresholds %+v", th)
	}
	if th.Classify(32000) != classify.Low || th.Classify(48000) != classify.Middle || th.Classify(49000) != classify.High {
		t.Errorf("boundary incomes were not closed on the left")
	}

	if _, err := classify.NewThresholds(reference, classify.LowPercentile(0.8)); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for crossed percentiles, got %v", err)
	}
}

func TestThresholdsEmptyReferenceSet(t *testing.T) {
	_, err := classify.NewThresholds(nil)
	if !stats.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := classify.NewClassifier(dataset.New()); !stats.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	d, err := dataset.FileSource{Path: "../dataset/testdata/income.csv"}.Load()
	if err != nil {
		t.Fatal(err)
	}
	c, err := classify.NewClassifier(d)
	if err != nil {
		t.Fatal(err)
	}
	incomes := d.Incomes()
	sort.Float64s(incomes)
	for i := 1; i < len(incomes); i++ {
		if c.Classify(incomes[i]) < c.Classify(incomes[i-1]) {
			t.Errorf("classify(%v) is lower than classify(%v)", incomes[i], incomes[i-1])
		}
	}
}

func TestClassifierSummarise(t *testing.T) {
	d := dataset.New(
		dataset.Record{Age: 25, Income: 20000},
		dataset.Record{Age: 30, Income: 30000},
		dataset.Record{Age: 35, Income: 40000},
		dataset.Record{Age: 40, Income: 50000},
		dataset.Record{Age: 45, Income: 60000},
	)
	c, err := classify.NewClassifier(d)
	if err != nil {
		t.Fatal(err)
	}

	groups := c.ClassifyAll()
	want := []classify.IncomeGroup{classify.Low, classify.Low, classify.Middle, classify.High, classify.High}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("record %d: got %s, want %s", i, groups[i], want[i])
		}
	}

	s := c.Summarise(classify.High)
	if s.Count != 2 || s.AverageIncome != 55000 {
		t.Errorf("unexpected high income summary %+v", s)
	}
	s = c.Summarise(classify.Middle)
	if s.Count != 1 || s.AverageIncome != 40000 {
		t.Errorf("unexpected middle income summary %+v", s)
	}
}

func TestIncomeGroupString(t *testing.T) {
	if classify.Middle.String() != "Middle Income Group" {
		t.Errorf("unexpected name %q", classify.Middle.String())
	}
	b, _ := classify.High.MarshalText()
	if string(b) != "High Income Group" {
		t.Errorf("unexpected text %q", b)
	}
}
