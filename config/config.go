// Package config reads the settings shared by the incomegroup commands.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatasetID is the remote dataset used when neither a path nor an id is configured.
const DefaultDatasetID = "duajanmuhammed/kmean-data"

// Config is the complete configuration.
type Config struct {
	Dataset struct {
		ID       string `toml:"id"`
		Path     string `toml:"path"`
		CacheDir string `toml:"cache_dir"`
		BaseURL  string `toml:"base_url"`
	} `toml:"dataset"`
	Cluster struct {
		K             int   `toml:"k"`
		Seed          int64 `toml:"seed"`
		MaxIterations int   `toml:"max_iterations"`
		Restarts      int   `toml:"restarts"`
		CacheSize     int   `toml:"cache_size"`
	} `toml:"cluster"`
	Groups struct {
		LowPercentile  float64 `toml:"low_percentile"`
		HighPercentile float64 `toml:"high_percentile"`
	} `toml:"groups"`
	Server struct {
		Addr    string `toml:"addr"`
		RPCAddr string `toml:"rpc_addr"`
	} `toml:"server"`
}

// Default is the configuration used for any setting a file does not provide.
func Default() Config {
	var c Config
	c.Dataset.ID = DefaultDatasetID
	c.Dataset.BaseURL = dataset.DefaultBaseURL
	if dir, err := os.UserCacheDir(); err == nil {
		c.Dataset.CacheDir = filepath.Join(dir, "incomegroup")
	} else {
		c.Dataset.CacheDir = filepath.Join(os.TempDir(), "incomegroup")
	}
	c.Cluster.K = cluster.DefaultK
	c.Cluster.MaxIterations = cluster.DefaultMaxIterations
	c.Cluster.Restarts = cluster.DefaultRestarts
	c.Cluster.CacheSize = 16
	c.Groups.LowPercentile = classify.DefaultLowPercentile
	c.Groups.HighPercentile = classify.DefaultHighPercentile
	c.Server.Addr = "0.0.0.0:8501"
	c.Server.RPCAddr = "0.0.0.0:8006"
	return c
}

// Load reads a configuration file over the defaults. Files ending in .properties are read as Java properties with
// dotted keys (e.g. cluster.k); anything else is read as TOML. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if len(path) == 0 {
		return c, nil
	}
	if strings.HasSuffix(path, ".properties") {
		return loadProperties(path, c)
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", path)
	}
	return c, c.Validate()
}

func loadProperties(path string, c Config) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", path)
	}
	c.Dataset.ID = p.GetString("dataset.id", c.Dataset.ID)
	c.Dataset.Path = p.GetString("dataset.path", c.Dataset.Path)
	c.Dataset.CacheDir = p.GetString("dataset.cache_dir", c.Dataset.CacheDir)
	c.Dataset.BaseURL = p.GetString("dataset.base_url", c.Dataset.BaseURL)
	c.Cluster.K = p.GetInt("cluster.k", c.Cluster.K)
	c.Cluster.Seed = p.GetInt64("cluster.seed", c.Cluster.Seed)
	c.Cluster.MaxIterations = p.GetInt("cluster.max_iterations", c.Cluster.MaxIterations)
	c.Cluster.Restarts = p.GetInt("cluster.restarts", c.Cluster.Restarts)
	c.Cluster.CacheSize = p.GetInt("cluster.cache_size", c.Cluster.CacheSize)
	c.Groups.LowPercentile = p.GetFloat64("groups.low_percentile", c.Groups.LowPercentile)
	c.Groups.HighPercentile = p.GetFloat64("groups.high_percentile", c.Groups.HighPercentile)
	c.Server.Addr = p.GetString("server.addr", c.Server.Addr)
	c.Server.RPCAddr = p.GetString("server.rpc_addr", c.Server.RPCAddr)
	return c, c.Validate()
}

// Validate checks the settings that cannot be checked where they are used.
func (c Config) Validate() error {
	if c.Cluster.K < 1 {
		return errors.Errorf("cluster.k must be at least 1, got %d", c.Cluster.K)
	}
	if c.Cluster.CacheSize < 1 {
		return errors.Errorf("cluster.cache_size must be at least 1, got %d", c.Cluster.CacheSize)
	}
	for _, p := range []float64{c.Groups.LowPercentile, c.Groups.HighPercentile} {
		if p < 0 || p > 1 {
			return errors.Errorf("group percentiles must be in [0, 1], got %v", p)
		}
	}
	if c.Groups.LowPercentile > c.Groups.HighPercentile {
		return errors.New("groups.low_percentile must not be above groups.high_percentile")
	}
	return nil
}

// Source is where the configured dataset is loaded from: the local file if a path is set, otherwise the remote
// dataset.
func (c Config) Source() dataset.Source {
	if len(c.Dataset.Path) > 0 {
		return dataset.FileSource{Path: c.Dataset.Path}
	}
	return dataset.DownloadSource{
		Downloader: dataset.NewKaggleDownloader(c.Dataset.CacheDir,
			dataset.KaggleBaseURL(c.Dataset.BaseURL),
			dataset.KaggleProgress(os.Stderr)),
		DatasetID: c.Dataset.ID,
	}
}

// ClusterOptions are the configured k-means options.
func (c Config) ClusterOptions() []cluster.Option {
	return []cluster.Option{
		cluster.K(c.Cluster.K),
		cluster.Seed(c.Cluster.Seed),
		cluster.MaxIterations(c.Cluster.MaxIterations),
		cluster.Restarts(c.Cluster.Restarts),
	}
}

// GroupOptions are the configured threshold options.
func (c Config) GroupOptions() []classify.Option {
	return []classify.Option{
		classify.LowPercentile(c.Groups.LowPercentile),
		classify.HighPercentile(c.Groups.HighPercentile),
	}
}
