// Package dashboard serves the income grouping dashboard over HTTP. Each request is handled independently: the
// handlers read the request, call the pure classification, lookup and clustering functions, and render the result.
package dashboard

import (
	"github.com/google/uuid"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log"
	"net/http"
)

const (
	// MinK is the smallest number of clusters that can be selected.
	MinK = 2
	// MaxK is the largest number of clusters that can be selected.
	MaxK = 6
	// RequestIDHeader carries the id assigned to each request.
	RequestIDHeader = "X-Request-Id"
)

// Server is the dashboard.
type Server struct {
	data          *dataset.Service
	models        *cluster.Cache
	clusterConfig []cluster.Option
	groupConfig   []classify.Option
	defaultK      int

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	mux      *http.ServeMux
}

// ClusterOptions sets the options every model is fitted with. The k chosen in a request takes precedence.
func ClusterOptions(options ...cluster.Option) func(s *Server) {
	return func(s *Server) {
		s.clusterConfig = options
	}
}

// GroupOptions sets how income group thresholds are computed.
func GroupOptions(options ...classify.Option) func(s *Server) {
	return func(s *Server) {
		s.groupConfig = options
	}
}

// DefaultK sets the number of clusters used when a request does not choose one.
func DefaultK(k int) func(s *Server) {
	return func(s *Server) {
		s.defaultK = k
	}
}

// NewServer creates a dashboard over the data service. Fitted models are kept in models.
func NewServer(data *dataset.Service, models *cluster.Cache, options ...func(s *Server)) *Server {
	s := &Server{
		data:     data,
		models:   models,
		defaultK: cluster.DefaultK,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incomegroup",
			Name:      "http_requests_total",
			Help:      "Number of dashboard requests by handler and status code.",
		}, []string{"handler", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "incomegroup",
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve dashboard requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		mux: http.NewServeMux(),
	}
	for _, o := range options {
		o(s)
	}
	if s.defaultK < MinK || s.defaultK > MaxK {
		s.defaultK = cluster.DefaultK
	}
	s.registry.MustRegister(s.requests, s.duration)

	s.handle("/", s.index)
	s.handle("/scatter.png", s.scatterPNG)
	s.handle("/scatter.html", s.scatterHTML)
	s.handle("/api/dataset", s.apiDataset)
	s.handle("/api/clusters", s.apiClusters)
	s.handle("/api/group", s.apiGroup)
	s.handle("/api/lookup", s.apiLookup)
	s.handle("/api/predict", s.apiPredict)
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	name := prometheus.Labels{"handler": pattern}
	instrumented := promhttp.InstrumentHandlerDuration(s.duration.MustCurryWith(name),
		promhttp.InstrumentHandlerCounter(s.requests.MustCurryWith(name), h))
	s.mux.Handle(pattern, instrumented)
}

// ServeHTTP assigns the request an id and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set(RequestIDHeader, id)
	log.Printf("[%s] %s %s\n", id, r.Method, r.URL.RequestURI())
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves the dashboard on addr. The dataset is loaded first, and an error is returned without
// listening if it cannot be.
func (s *Server) ListenAndServe(addr string) error {
	if _, err := s.data.Dataset(); err != nil {
		return err
	}
	log.Printf("serving dashboard on %s\n", addr)
	return http.ListenAndServe(addr, s)
}
