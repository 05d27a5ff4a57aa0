package dashboard

import (
	"bytes"
	"encoding/json"
	"github.com/hscells/incomegroup"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/lookup"
	"github.com/hscells/incomegroup/output"
	"github.com/hscells/incomegroup/pipeline"
	"github.com/hscells/incomegroup/stats"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"log"
	"net/http"
	"net/url"
)

// query holds the parameters any handler may read. Age and Income are nil when they were not supplied.
type query struct {
	K      int      `mapstructure:"k"`
	Age    *int     `mapstructure:"age"`
	Income *float64 `mapstructure:"income"`
	Find   bool     `mapstructure:"find"`
}

func (s *Server) decode(values url.Values) (query, error) {
	flat := make(map[string]interface{})
	for k, v := range values {
		if len(v) > 0 && len(v[0]) > 0 {
			flat[k] = v[0]
		}
	}

	var q query
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &q,
	})
	if err != nil {
		return q, err
	}
	if err := decoder.Decode(flat); err != nil {
		return q, errors.Wrapf(stats.ErrInvalidInput, "%v", err)
	}

	if q.K == 0 {
		q.K = s.defaultK
	}
	if q.K < MinK || q.K > MaxK {
		return q, errors.Wrapf(stats.ErrInvalidInput, "k must be between %d and %d, got %d", MinK, MaxK, q.K)
	}
	if q.Age != nil && *q.Age < 0 {
		return q, errors.Wrapf(stats.ErrInvalidInput, "age must not be negative, got %d", *q.Age)
	}
	if q.Income != nil {
		if err := stats.CheckIncome(*q.Income); err != nil {
			return q, err
		}
	}
	return q, nil
}

func (q query) input() (pipeline.Input, error) {
	if q.Age == nil || q.Income == nil {
		return pipeline.Input{}, errors.Wrap(stats.ErrInvalidInput, "both age and income are required")
	}
	return pipeline.NewInput(*q.Age, *q.Income), nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case stats.IsInvalidInput(err):
		code = http.StatusBadRequest
	case dataset.IsUnavailable(err), errors.Cause(err) == dataset.ErrInvalidDataset:
		code = http.StatusServiceUnavailable
	}
	log.Printf("%d: %v\n", code, err)
	http.Error(w, err.Error(), code)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *Server) model(ds dataset.Dataset, k int) (*cluster.Model, error) {
	options := append(append([]cluster.Option{}, s.clusterConfig...), cluster.K(k))
	return s.models.Fit(ds, options...)
}

// state loads the dataset and derives the model and classifier a request needs.
func (s *Server) state(k int) (dataset.Dataset, *cluster.Model, *classify.Classifier, error) {
	ds, err := s.data.Dataset()
	if err != nil {
		return ds, nil, nil, err
	}
	model, err := s.model(ds, k)
	if err != nil {
		return ds, nil, nil, err
	}
	classifier, err := classify.NewClassifier(ds, s.groupConfig...)
	if err != nil {
		return ds, nil, nil, err
	}
	return ds, model, &classifier, nil
}

func (s *Server) scatterPNG(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	ds, model, _, err := s.state(q.K)
	if err != nil {
		s.fail(w, err)
		return
	}
	var in *pipeline.Input
	if i, err := q.input(); err == nil {
		in = &i
	}
	p, err := output.NewScatter(ds, incomegroup.ScatterOptions(ds, model, nil, in)...)
	if err != nil {
		s.fail(w, err)
		return
	}
	b := new(bytes.Buffer)
	if err := output.WritePNG(p, b); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(b.Bytes())
}

func (s *Server) scatterHTML(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	ds, model, _, err := s.state(q.K)
	if err != nil {
		s.fail(w, err)
		return
	}
	var in *pipeline.Input
	if i, err := q.input(); err == nil {
		in = &i
	}
	chart, err := output.NewEchartsScatter(ds, incomegroup.ScatterOptions(ds, model, nil, in)...)
	if err != nil {
		s.fail(w, err)
		return
	}
	b := new(bytes.Buffer)
	if err := chart.Render(b); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(b.Bytes())
}

type datasetResponse struct {
	Records []dataset.Record `json:"records"`
	MinAge  int              `json:"min_age"`
	MaxAge  int              `json:"max_age"`
}

func (s *Server) apiDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := s.data.Dataset()
	if err != nil {
		s.fail(w, err)
		return
	}
	min, max := ds.AgeBounds()
	s.writeJSON(w, datasetResponse{Records: ds.Records, MinAge: min, MaxAge: max})
}

func (s *Server) apiClusters(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	ds, err := s.data.Dataset()
	if err != nil {
		s.fail(w, err)
		return
	}
	model, err := s.model(ds, q.K)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, model)
}

type groupResponse struct {
	Income     float64             `json:"income"`
	Thresholds classify.Thresholds `json:"thresholds"`
	Group      classify.Summary    `json:"group"`
}

func (s *Server) apiGroup(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	if q.Income == nil {
		s.fail(w, errors.Wrap(stats.ErrInvalidInput, "income is required"))
		return
	}
	ds, err := s.data.Dataset()
	if err != nil {
		s.fail(w, err)
		return
	}
	classifier, err := classify.NewClassifier(ds, s.groupConfig...)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, groupResponse{
		Income:     *q.Income,
		Thresholds: classifier.Thresholds,
		Group:      classifier.Summarise(classifier.Classify(*q.Income)),
	})
}

func (s *Server) apiLookup(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	if q.Age == nil {
		s.fail(w, errors.Wrap(stats.ErrInvalidInput, "age is required"))
		return
	}
	ds, err := s.data.Dataset()
	if err != nil {
		s.fail(w, err)
		return
	}
	m, err := lookup.Nearest(*q.Age, ds)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, m)
}

func (s *Server) apiPredict(w http.ResponseWriter, r *http.Request) {
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	in, err := q.input()
	if err != nil {
		s.fail(w, err)
		return
	}
	ds, model, classifier, err := s.state(q.K)
	if err != nil {
		s.fail(w, err)
		return
	}
	p, err := pipeline.Predict(in, ds, model, classifier)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, p)
}
