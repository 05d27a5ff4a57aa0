// Package cluster fits k-means models over (age, income) points. The clustering itself is done by
// github.com/bugra/kmeans; this package makes it reproducible and keeps the centroids around for prediction.
package cluster

import (
	"fmt"
	"github.com/bugra/kmeans"
	"github.com/hscells/incomegroup/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
	"math/rand"
	"sort"
	"sync"
)

const (
	// DefaultK is the number of clusters fitted when none is specified.
	DefaultK = 3
	// DefaultMaxIterations bounds the number of Lloyd iterations per restart.
	DefaultMaxIterations = 300
	// DefaultRestarts is the number of differently seeded fits the best model is chosen from.
	DefaultRestarts = 10
)

// The kmeans package draws from the global math/rand source, so fits are serialised to keep seeded results stable.
// rand.Seed only has an effect while go.mod sets randseednop=0.
var rngMu sync.Mutex

// Option configures a fit.
type Option func(o *options)

type options struct {
	k             int
	seed          int64
	maxIterations int
	restarts      int
}

func (o options) String() string {
	return fmt.Sprintf("k=%d/seed=%d/iter=%d/restarts=%d", o.k, o.seed, o.maxIterations, o.restarts)
}

// K sets the number of clusters.
func K(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// Seed sets the seed of the first restart; restart i is seeded with seed+i.
func Seed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// MaxIterations bounds the number of iterations in each restart.
func MaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// Restarts sets how many seeded fits are tried.
func Restarts(n int) Option {
	return func(o *options) {
		o.restarts = n
	}
}

func newOptions(opts ...Option) options {
	o := options{
		k:             DefaultK,
		maxIterations: DefaultMaxIterations,
		restarts:      DefaultRestarts,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.restarts < 1 {
		o.restarts = 1
	}
	if o.maxIterations < 1 {
		o.maxIterations = 1
	}
	return o
}

// Model is a fitted k-means model. Cluster 0 is the cluster with the lowest mean income.
type Model struct {
	K         int         `json:"k"`
	Labels    []int       `json:"labels"`
	Centroids [][]float64 `json:"centroids"`
	Sizes     []int       `json:"sizes"`
	Inertia   float64     `json:"inertia"`
}

// Predict returns the cluster whose centroid is closest to point.
func (m *Model) Predict(point []float64) (int, error) {
	if len(m.Centroids) == 0 {
		return 0, errors.Wrap(stats.ErrInvalidInput, "model has no centroids")
	}
	if len(point) != len(m.Centroids[0]) {
		return 0, errors.Wrapf(stats.ErrInvalidInput, "point has %d dimensions, model has %d", len(point), len(m.Centroids[0]))
	}
	best, bestDist := 0, math.Inf(1)
	for i, c := range m.Centroids {
		if d := floats.Distance(point, c, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

func distinct(points [][]float64) int {
	seen := make(map[string]struct{})
	for _, p := range points {
		seen[fmt.Sprint(p)] = struct{}{}
	}
	return len(seen)
}

// Fit clusters points. Every restart runs k-means++ seeding followed by Lloyd iterations, and the restart with the
// smallest within-cluster sum of squares is kept.
func Fit(points [][]float64, opts ...Option) (*Model, error) {
	o := newOptions(opts...)
	if len(points) == 0 {
		return nil, stats.ErrEmptyReferenceSet
	}
	if o.k < 1 {
		return nil, errors.Wrapf(stats.ErrInvalidInput, "k must be at least 1, got %d", o.k)
	}
	if n := distinct(points); n < o.k {
		return nil, errors.Wrapf(stats.ErrInvalidInput, "cannot find %d clusters in %d distinct points", o.k, n)
	}
	dims := len(points[0])
	for _, p := range points {
		if len(p) != dims {
			return nil, errors.Wrap(stats.ErrInvalidInput, "points have differing dimensions")
		}
	}

	var best *Model
	for r := 0; r < o.restarts; r++ {
		labels, err := run(points, o, o.seed+int64(r))
		if err != nil {
			return nil, err
		}
		m, ok := newModel(points, labels, o.k)
		if !ok {
			continue
		}
		if best == nil || m.Inertia < best.Inertia {
			best = m
		}
	}
	if best == nil {
		return nil, errors.Errorf("no restart produced %d non-empty clusters", o.k)
	}
	return canonical(best), nil
}

func run(points [][]float64, o options, seed int64) ([]int, error) {
	data := make([][]float64, len(points))
	for i, p := range points {
		data[i] = append([]float64(nil), p...)
	}

	rngMu.Lock()
	defer rngMu.Unlock()
	rand.Seed(seed)
	labels, err := kmeans.Kmeans(data, o.k, kmeans.EuclideanDistance, o.maxIterations)
	if err != nil {
		return nil, errors.Wrap(err, "k-means")
	}
	return labels, nil
}

// newModel computes centroids from labels. It reports false if a cluster ended up empty.
func newModel(points [][]float64, labels []int, k int) (*Model, bool) {
	dims := len(points[0])
	members := make([][][]float64, k)
	for i, l := range labels {
		if l < 0 || l >= k {
			return nil, false
		}
		members[l] = append(members[l], points[i])
	}

	m := &Model{
		K:         k,
		Labels:    labels,
		Centroids: make([][]float64, k),
		Sizes:     make([]int, k),
	}
	for c := range members {
		if len(members[c]) == 0 {
			return nil, false
		}
		m.Sizes[c] = len(members[c])
		m.Centroids[c] = make([]float64, dims)
		col := make([]float64, len(members[c]))
		for d := 0; d < dims; d++ {
			for i, p := range members[c] {
				col[i] = p[d]
			}
			mean, _ := stats.Mean(col)
			m.Centroids[c][d] = mean
		}
	}
	for i, l := range labels {
		d := floats.Distance(points[i], m.Centroids[l], 2)
		m.Inertia += d * d
	}
	return m, true
}

// canonical relabels clusters in order of ascending centroid, comparing the last dimension (income) first.
func canonical(m *Model) *Model {
	order := make([]int, m.K)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := m.Centroids[order[i]], m.Centroids[order[j]]
		for d := len(a) - 1; d >= 0; d-- {
			if a[d] != b[d] {
				return a[d] < b[d]
			}
		}
		return false
	})

	relabel := make([]int, m.K)
	out := &Model{
		K:         m.K,
		Labels:    make([]int, len(m.Labels)),
		Centroids: make([][]float64, m.K),
		Sizes:     make([]int, m.K),
		Inertia:   m.Inertia,
	}
	for newLabel, oldLabel := range order {
		relabel[oldLabel] = newLabel
		out.Centroids[newLabel] = m.Centroids[oldLabel]
		out.Sizes[newLabel] = m.Sizes[oldLabel]
	}
	for i, l := range m.Labels {
		out.Labels[i] = relabel[l]
	}
	return out
}
