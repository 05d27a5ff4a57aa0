// Package dataset loads the (age, income) records that income groups and clusters are derived from.
package dataset

import (
	"crypto/sha256"
	"fmt"
	"github.com/hscells/incomegroup/stats"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
	"sort"
	"strconv"
)

const (
	// AgeColumn is the name of the age column in a dataset file.
	AgeColumn = "Age"
	// IncomeColumn is the name of the income column in a dataset file.
	IncomeColumn = "Income($)"
)

// Record is a single row of a dataset.
type Record struct {
	Age    int     `json:"age"`
	Income float64 `json:"income"`
}

// Dataset is an ordered collection of records. Row position is the only identity a record has. A dataset handed out by
// a Service is shared, and must not be modified.
type Dataset struct {
	Records []Record
}

// New creates a dataset from records.
func New(records ...Record) Dataset {
	return Dataset{Records: records}
}

// Len is the number of records in the dataset.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Ages returns the age column.
func (d Dataset) Ages() []int {
	ages := make([]int, len(d.Records))
	for i, r := range d.Records {
		ages[i] = r.Age
	}
	return ages
}

// Incomes returns the income column.
func (d Dataset) Incomes() []float64 {
	incomes := make([]float64, len(d.Records))
	for i, r := range d.Records {
		incomes[i] = r.Income
	}
	return incomes
}

// Points returns every record as an (age, income) vector.
func (d Dataset) Points() [][]float64 {
	points := make([][]float64, len(d.Records))
	for i, r := range d.Records {
		points[i] = []float64{float64(r.Age), r.Income}
	}
	return points
}

// AgeBounds is the smallest and largest age in the dataset. The bounds of an empty dataset are both zero.
func (d Dataset) AgeBounds() (min, max int) {
	if len(d.Records) == 0 {
		return 0, 0
	}
	min, max = d.Records[0].Age, d.Records[0].Age
	for _, r := range d.Records[1:] {
		if r.Age < min {
			min = r.Age
		}
		if r.Age > max {
			max = r.Age
		}
	}
	return
}

// CheckAge returns stats.ErrInvalidInput if age lies outside the ages of d.
func (d Dataset) CheckAge(age int) error {
	min, max := d.AgeBounds()
	if age < min || age > max {
		return errors.Wrapf(stats.ErrInvalidInput, "age must be between %d and %d, got %d", min, max, age)
	}
	return nil
}

// DistinctAges returns the ages present in the dataset in ascending order.
func (d Dataset) DistinctAges() []int {
	ages := d.Ages()
	sort.Ints(ages)
	n := set.Uniq(sort.IntSlice(ages))
	return ages[:n]
}

// Fingerprint identifies the contents of the dataset, so derived values can be cached against it.
func (d Dataset) Fingerprint() string {
	h := sha256.New()
	for _, r := range d.Records {
		h.Write([]byte(strconv.Itoa(r.Age)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.FormatFloat(r.Income, 'g', -1, 64)))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
