// Package classify buckets incomes into low, middle and high income groups using percentile thresholds computed from
// a reference set of incomes.
package classify

import (
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/stats"
	"github.com/pkg/errors"
)

// IncomeGroup is one of the three rule-based income categories. Groups are ordered, so a higher group always has a
// larger value.
type IncomeGroup int

const (
	Low IncomeGroup = iota
	Middle
	High
)

// Groups lists every income group from lowest to highest.
var Groups = []IncomeGroup{Low, Middle, High}

func (g IncomeGroup) String() string {
	switch g {
	case Low:
		return "Low Income Group"
	case Middle:
		return "Middle Income Group"
	case High:
		return "High Income Group"
	}
	return "Unknown Income Group"
}

// MarshalText writes the group as its name.
func (g IncomeGroup) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText reads a group from its name.
func (g *IncomeGroup) UnmarshalText(text []byte) error {
	for _, group := range Groups {
		if group.String() == string(text) {
			*g = group
			return nil
		}
	}
	return errors.Errorf("unknown income group %q", text)
}

const (
	// DefaultLowPercentile is the percentile at or below which an income is low.
	DefaultLowPercentile = 0.33
	// DefaultHighPercentile is the percentile above which an income is high. Percentiles are interpolated, so for
	// incomes 20000, 30000, 40000, 50000 and 60000 the high threshold is 46400 and 48000 is high; HighPercentile(0.7)
	// puts the threshold at 48000 instead.
	DefaultHighPercentile = 0.66
)

// Thresholds are the income boundaries between groups. An income equal to a threshold belongs to the lower group.
type Thresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Option configures how thresholds are computed.
type Option func(o *options)

type options struct {
	low, high float64
}

// LowPercentile overrides the percentile of the low threshold.
func LowPercentile(p float64) Option {
	return func(o *options) {
		o.low = p
	}
}

// HighPercentile overrides the percentile of the high threshold.
func HighPercentile(p float64) Option {
	return func(o *options) {
		o.high = p
	}
}

// NewThresholds computes thresholds from a reference set of incomes.
func NewThresholds(incomes []float64, opts ...Option) (Thresholds, error) {
	o := options{low: DefaultLowPercentile, high: DefaultHighPercentile}
	for _, opt := range opts {
		opt(&o)
	}
	if o.low > o.high {
		return Thresholds{}, errors.Wrapf(stats.ErrInvalidInput, "low percentile %v is above high percentile %v", o.low, o.high)
	}
	low, err := stats.Percentile(incomes, o.low)
	if err != nil {
		return Thresholds{}, errors.Wrap(err, "computing low threshold")
	}
	high, err := stats.Percentile(incomes, o.high)
	if err != nil {
		return Thresholds{}, errors.Wrap(err, "computing high threshold")
	}
	return Thresholds{Low: low, High: high}, nil
}

// Classify buckets an income. NaN compares false against both thresholds and is classified high, so incomes from
// outside the program should be checked with stats.CheckIncome first.
func (t Thresholds) Classify(income float64) IncomeGroup {
	switch {
	case income <= t.Low:
		return Low
	case income <= t.High:
		return Middle
	default:
		return High
	}
}

// Classifier classifies incomes against the dataset its thresholds were computed from.
type Classifier struct {
	Thresholds Thresholds
	Reference  dataset.Dataset
}

// NewClassifier computes thresholds from the incomes of ds. The thresholds are specific to ds; a classifier should be
// created again whenever the loaded data changes.
func NewClassifier(ds dataset.Dataset, opts ...Option) (Classifier, error) {
	t, err := NewThresholds(ds.Incomes(), opts...)
	if err != nil {
		return Classifier{}, err
	}
	return Classifier{Thresholds: t, Reference: ds}, nil
}

// Classify buckets an income against the classifier's thresholds.
func (c Classifier) Classify(income float64) IncomeGroup {
	return c.Thresholds.Classify(income)
}

// ClassifyAll returns the group of every record in the reference dataset, in row order.
func (c Classifier) ClassifyAll() []IncomeGroup {
	groups := make([]IncomeGroup, c.Reference.Len())
	for i, r := range c.Reference.Records {
		groups[i] = c.Classify(r.Income)
	}
	return groups
}

// Summary describes the members of one income group.
type Summary struct {
	Group         IncomeGroup `json:"group"`
	AverageIncome float64     `json:"average_income"`
	Count         int         `json:"count"`
}

// Summarise computes the average income and size of a group in the reference dataset. A group with no members has
// an average income of zero.
func (c Classifier) Summarise(g IncomeGroup) Summary {
	var incomes []float64
	for _, r := range c.Reference.Records {
		if c.Classify(r.Income) == g {
			incomes = append(incomes, r.Income)
		}
	}
	s := Summary{Group: g, Count: len(incomes)}
	if mean, err := stats.Mean(incomes); err == nil {
		s.AverageIncome = mean
	}
	return s
}
