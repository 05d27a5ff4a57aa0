package cluster

import (
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/incomegroup/dataset"
)

// Cache keeps recently fitted models, keyed by the dataset they were fitted to and the options they were fitted with.
type Cache struct {
	models *lru.Cache
}

// NewCache creates a cache holding at most size models.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{models: c}, nil
}

// Fit returns the cached model for ds and opts, fitting and caching one if there is none.
func (c *Cache) Fit(ds dataset.Dataset, opts ...Option) (*Model, error) {
	key := ds.Fingerprint() + "/" + newOptions(opts...).String()
	if m, ok := c.models.Get(key); ok {
		return m.(*Model), nil
	}
	m, err := Fit(ds.Points(), opts...)
	if err != nil {
		return nil, err
	}
	c.models.Add(key, m)
	return m, nil
}

// Len is the number of cached models.
func (c *Cache) Len() int {
	return c.models.Len()
}
