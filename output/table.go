// Package output provides the different ways results are presented: tables, plots and summaries.
package output

import (
	"bytes"
	"fmt"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/pkg/errors"
	"text/tabwriter"
)

// Table is a dataset together with whichever derived columns have been computed for it.
type Table struct {
	Records  []dataset.Record
	Clusters []int
	Groups   []classify.IncomeGroup
}

// NewTable creates a table of the dataset with no derived columns.
func NewTable(ds dataset.Dataset) Table {
	return Table{Records: ds.Records}
}

// WithClusters adds the cluster column.
func (t Table) WithClusters(labels []int) Table {
	t.Clusters = labels
	return t
}

// WithGroups adds the income group column.
func (t Table) WithGroups(groups []classify.IncomeGroup) Table {
	t.Groups = groups
	return t
}

// DataFrame converts the table into a data frame, with derived columns after the original ones.
func (t Table) DataFrame() (dataframe.DataFrame, error) {
	n := len(t.Records)
	ages := make([]int, n)
	incomes := make([]float64, n)
	for i, r := range t.Records {
		ages[i] = r.Age
		incomes[i] = r.Income
	}
	cols := []series.Series{
		series.New(ages, series.Int, dataset.AgeColumn),
		series.New(incomes, series.Float, dataset.IncomeColumn),
	}
	if t.Clusters != nil {
		if len(t.Clusters) != n {
			return dataframe.DataFrame{}, errors.New("the length of records and clusters must be the same")
		}
		cols = append(cols, series.New(t.Clusters, series.Int, "Cluster"))
	}
	if t.Groups != nil {
		if len(t.Groups) != n {
			return dataframe.DataFrame{}, errors.New("the length of records and groups must be the same")
		}
		names := make([]string, n)
		for i, g := range t.Groups {
			names[i] = g.String()
		}
		cols = append(cols, series.New(names, series.String, "Income Group"))
	}
	df := dataframe.New(cols...)
	return df, df.Err
}

// CentroidTable creates a data frame of the cluster centres of a model fitted over (age, income) points.
func CentroidTable(m *cluster.Model) dataframe.DataFrame {
	ids := make([]int, m.K)
	ages := make([]float64, m.K)
	incomes := make([]float64, m.K)
	for i, c := range m.Centroids {
		ids[i] = i
		ages[i] = c[0]
		incomes[i] = c[1]
	}
	return dataframe.New(
		series.New(ids, series.Int, "Cluster"),
		series.New(ages, series.Float, dataset.AgeColumn),
		series.New(incomes, series.Float, dataset.IncomeColumn),
		series.New(m.Sizes, series.Int, "Size"),
	)
}

// TableFormatter renders a data frame.
type TableFormatter func(df dataframe.DataFrame) (string, error)

// CsvTableFormatter outputs a table in CSV format.
func CsvTableFormatter(df dataframe.DataFrame) (string, error) {
	b := bytes.NewBufferString("")
	if err := df.WriteCSV(b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JsonTableFormatter outputs a table as a JSON array of rows.
func JsonTableFormatter(df dataframe.DataFrame) (string, error) {
	b := bytes.NewBufferString("")
	if err := df.WriteJSON(b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TextTableFormatter outputs a table as aligned columns for reading in a terminal.
func TextTableFormatter(df dataframe.DataFrame) (string, error) {
	b := bytes.NewBufferString("")
	w := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, record := range df.Records() {
		for i, v := range record {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, v)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TableFormatters maps the names formats are selected by to their formatter.
var TableFormatters = map[string]TableFormatter{
	"csv":  CsvTableFormatter,
	"json": JsonTableFormatter,
	"text": TextTableFormatter,
}
