package dataset

import (
	"log"
	"sync"
)

// Service owns the dataset for the lifetime of a process. It is constructed once and passed to whatever needs the
// data; the source is only read on first use and after Reload.
type Service struct {
	source Source

	mu     sync.RWMutex
	loaded bool
	data   Dataset
}

// NewService creates a service that loads from source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Dataset returns the loaded dataset, loading it if this is the first call.
func (s *Service) Dataset() (Dataset, error) {
	s.mu.RLock()
	if s.loaded {
		d := s.data
		s.mu.RUnlock()
		return d, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.data, nil
	}
	return s.load()
}

// Reload discards the loaded dataset and reads the source again.
func (s *Service) Reload() (Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.data = Dataset{}
	return s.load()
}

func (s *Service) load() (Dataset, error) {
	log.Println("loading dataset...")
	d, err := s.source.Load()
	if err != nil {
		return Dataset{}, err
	}
	log.Printf("loaded %d records\n", d.Len())
	s.data = d
	s.loaded = true
	return d, nil
}
