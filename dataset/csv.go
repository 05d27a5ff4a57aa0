package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"io"
	"math"
)

// ErrInvalidDataset is returned when a dataset file does not have the expected shape.
var ErrInvalidDataset = errors.New("invalid dataset")

// ReadCSV reads a dataset from CSV. The file must have a header containing the Age and Income($) columns; any other
// columns are ignored. Ages must be whole numbers.
func ReadCSV(r io.Reader) (Dataset, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return Dataset{}, errors.Wrapf(ErrInvalidDataset, "could not parse csv: %v", df.Err)
	}

	var hasAge, hasIncome bool
	for _, name := range df.Names() {
		switch name {
		case AgeColumn:
			hasAge = true
		case IncomeColumn:
			hasIncome = true
		}
	}
	if !hasAge || !hasIncome {
		return Dataset{}, errors.Wrapf(ErrInvalidDataset, "expected columns %q and %q, got %v", AgeColumn, IncomeColumn, df.Names())
	}

	ages := df.Col(AgeColumn).Float()
	incomes := df.Col(IncomeColumn).Float()

	records := make([]Record, df.Nrow())
	for i := range records {
		age, income := ages[i], incomes[i]
		if math.IsNaN(age) || math.Trunc(age) != age {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "row %d: age is not a whole number", i+1)
		}
		if math.IsNaN(income) || math.IsInf(income, 0) {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "row %d: income is not numeric", i+1)
		}
		records[i] = Record{Age: int(age), Income: income}
	}
	return Dataset{Records: records}, nil
}
