package config_test

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/config"
	"github.com/hscells/incomegroup/dataset"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dataset.ID != config.DefaultDatasetID || c.Cluster.K != 3 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.Groups.LowPercentile != classify.DefaultLowPercentile {
		t.Errorf("unexpected low percentile %v", c.Groups.LowPercentile)
	}
	if _, ok := c.Source().(dataset.DownloadSource); !ok {
		t.Errorf("expected the default source to download")
	}
}

func TestLoadTOML(t *testing.T) {
	c, err := config.Load("testdata/incomegroup.toml")
	if err != nil {
		t.Fatal(err)
	}
	if c.Cluster.K != 4 || c.Cluster.Seed != 7 {
		t.Errorf("unexpected cluster settings %+v", c.Cluster)
	}
	// Settings not in the file keep their defaults.
	if c.Cluster.Restarts != 10 {
		t.Errorf("expected default restarts, got %d", c.Cluster.Restarts)
	}
	if _, ok := c.Source().(dataset.FileSource); !ok {
		t.Errorf("expected a file source when a path is configured")
	}
	if len(c.ClusterOptions()) != 4 || len(c.GroupOptions()) != 2 {
		t.Errorf("unexpected options")
	}
}

func TestLoadProperties(t *testing.T) {
	c, err := config.Load("testdata/incomegroup.properties")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dataset.ID != "someone/other-data" || c.Cluster.K != 2 || c.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("unexpected configuration %+v", c)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := config.Load("testdata/invalid.toml"); err == nil {
		t.Error("expected crossed percentiles to be rejected")
	}
	if _, err := config.Load("testdata/missing.toml"); err == nil {
		t.Error("expected a missing file to be an error")
	}
}
