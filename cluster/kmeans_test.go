package cluster_test

import (
	"fmt"
	"github.com/google/go-cmp/cmp"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/stats"
	"math"
	"testing"
)

// Three well separated groups of (age, income).
var points = [][]float64{
	{25, 20000}, {27, 21000}, {26, 19500}, {24, 20500},
	{35, 60000}, {36, 61000}, {34, 59000}, {37, 60500},
	{50, 120000}, {52, 118000}, {49, 121000}, {51, 119500},
}

func TestFit(t *testing.T) {
	m, err := cluster.Fit(points, cluster.K(3), cluster.Seed(0))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2}
	if diff := cmp.Diff(want, m.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 4, 4}, m.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{25.5, 20250}, m.Centroids[0]); diff != "" {
		t.Errorf("centroid mismatch (-want +got):\n%s", diff)
	}
	for c := 1; c < m.K; c++ {
		if m.Centroids[c][1] <= m.Centroids[c-1][1] {
			t.Errorf("clusters are not ordered by income: %v", m.Centroids)
		}
	}
}

func TestFitDeterministic(t *testing.T) {
	d, err := dataset.FileSource{Path: "../dataset/testdata/income.csv"}.Load()
	if err != nil {
		t.Fatal(err)
	}
	first, err := cluster.Fit(d.Points(), cluster.K(3), cluster.Seed(42))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := cluster.Fit(d.Points(), cluster.K(3), cluster.Seed(42))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("refit differs (-first +again):\n%s", diff)
		}
	}
}

// ring has no natural clustering, so the partition found depends on where k-means++ starts.
func ring(n int) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = []float64{40 + 10*math.Cos(theta), 50000 + 10*math.Sin(theta)}
	}
	return pts
}

func TestFitSingleRestartSeeded(t *testing.T) {
	pts := ring(40)
	first, err := cluster.Fit(pts, cluster.K(5), cluster.Seed(42), cluster.Restarts(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := cluster.Fit(pts, cluster.K(5), cluster.Seed(42), cluster.Restarts(1))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first.Labels, again.Labels); diff != "" {
			t.Fatalf("fit %d labels differ (-first +again):\n%s", i, diff)
		}
		if diff := cmp.Diff(first.Centroids, again.Centroids); diff != "" {
			t.Fatalf("fit %d centroids differ (-first +again):\n%s", i, diff)
		}
	}
}

func TestFitSeedsDiffer(t *testing.T) {
	pts := ring(40)
	seen := make(map[string]struct{})
	for seed := int64(0); seed < 20; seed++ {
		m, err := cluster.Fit(pts, cluster.K(5), cluster.Seed(seed), cluster.Restarts(1))
		if err != nil {
			continue
		}
		seen[fmt.Sprint(m.Labels)] = struct{}{}
	}
	if len(seen) < 2 {
		t.Errorf("expected different seeds to find different partitions, got %d distinct", len(seen))
	}
}

func TestPredict(t *testing.T) {
	m, err := cluster.Fit(points, cluster.K(3))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		point []float64
		want  int
	}{
		{[]float64{30, 22000}, 0},
		{[]float64{40, 58000}, 1},
		{[]float64{45, 150000}, 2},
	}
	for _, test := range tests {
		got, err := m.Predict(test.point)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("predict(%v) = %d, want %d", test.point, got, test.want)
		}
	}
	if _, err := m.Predict([]float64{30}); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for a point of the wrong dimension, got %v", err)
	}
}

func TestFitInvalid(t *testing.T) {
	if _, err := cluster.Fit(nil); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for no points, got %v", err)
	}
	if _, err := cluster.Fit(points, cluster.K(0)); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for k=0, got %v", err)
	}
	same := [][]float64{{30, 1000}, {30, 1000}, {40, 2000}}
	if _, err := cluster.Fit(same, cluster.K(3)); !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input for too few distinct points, got %v", err)
	}
}

func TestCache(t *testing.T) {
	d := dataset.New()
	for _, p := range points {
		d.Records = append(d.Records, dataset.Record{Age: int(p[0]), Income: p[1]})
	}
	c, err := cluster.NewCache(2)
	if err != nil {
		t.Fatal(err)
	}
	a, err := c.Fit(d, cluster.K(3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Fit(d, cluster.K(3))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the cached model to be returned")
	}
	if _, err := c.Fit(d, cluster.K(2)); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("expected two cached models, got %d", c.Len())
	}
}
