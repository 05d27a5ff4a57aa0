package dataset_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/stats"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	d, err := dataset.FileSource{Path: "testdata/income.csv"}.Load()
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 22 {
		t.Fatalf("expected 22 records, got %d", d.Len())
	}
	if diff := cmp.Diff(dataset.Record{Age: 27, Income: 70000}, d.Records[0]); diff != "" {
		t.Errorf("first record mismatch (-want +got):\n%s", diff)
	}
	min, max := d.AgeBounds()
	if min != 26 || max != 43 {
		t.Errorf("expected age bounds [26, 43], got [%d, %d]", min, max)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := dataset.FileSource{Path: "testdata/missing_income.csv"}.Load()
	if err == nil {
		t.Fatal("expected an error for a file without an income column")
	}
	if dataset.IsUnavailable(err) {
		t.Errorf("a malformed file is not an unavailable dataset: %v", err)
	}
}

func TestReadCSVFractionalAge(t *testing.T) {
	_, err := dataset.ReadCSV(strings.NewReader("Age,Income($)\n27.5,1000\n"))
	if err == nil {
		t.Fatal("expected an error for a fractional age")
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := dataset.FileSource{Path: "testdata/does_not_exist.csv"}.Load()
	if !dataset.IsUnavailable(err) {
		t.Errorf("expected dataset unavailable, got %v", err)
	}
}

func TestDistinctAges(t *testing.T) {
	d := dataset.New(
		dataset.Record{Age: 30, Income: 1},
		dataset.Record{Age: 25, Income: 2},
		dataset.Record{Age: 30, Income: 3},
		dataset.Record{Age: 40, Income: 4},
	)
	if diff := cmp.Diff([]int{25, 30, 40}, d.DistinctAges()); diff != "" {
		t.Errorf("distinct ages mismatch (-want +got):\n%s", diff)
	}
	// The records themselves must keep their order.
	if d.Records[0].Age != 30 {
		t.Errorf("records were reordered")
	}
}

func TestCheckAge(t *testing.T) {
	d := dataset.New(
		dataset.Record{Age: 30, Income: 1},
		dataset.Record{Age: 25, Income: 2},
		dataset.Record{Age: 40, Income: 4},
	)
	for _, age := range []int{25, 33, 40} {
		if err := d.CheckAge(age); err != nil {
			t.Errorf("CheckAge(%d) = %v", age, err)
		}
	}
	for _, age := range []int{24, 41, -1} {
		if err := d.CheckAge(age); !stats.IsInvalidInput(err) {
			t.Errorf("CheckAge(%d): expected invalid input, got %v", age, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := dataset.New(dataset.Record{Age: 25, Income: 20000})
	b := dataset.New(dataset.Record{Age: 25, Income: 20000})
	c := dataset.New(dataset.Record{Age: 25, Income: 20001})
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical datasets should have identical fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different datasets should have different fingerprints")
	}
}

type countingSource struct {
	loads int
}

func (c *countingSource) Load() (dataset.Dataset, error) {
	c.loads++
	return dataset.New(dataset.Record{Age: 20 + c.loads, Income: 1000}), nil
}

func TestService(t *testing.T) {
	src := &countingSource{}
	s := dataset.NewService(src)

	for i := 0; i < 3; i++ {
		d, err := s.Dataset()
		if err != nil {
			t.Fatal(err)
		}
		if d.Records[0].Age != 21 {
			t.Errorf("expected the first load to be served, got age %d", d.Records[0].Age)
		}
	}
	if src.loads != 1 {
		t.Errorf("expected one load, got %d", src.loads)
	}

	d, err := s.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if src.loads != 2 || d.Records[0].Age != 22 {
		t.Errorf("reload did not read the source again")
	}
}
