package pipeline_test

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/pipeline"
	"github.com/hscells/incomegroup/stats"
	"testing"
)

var ds = dataset.New(
	dataset.Record{Age: 30, Income: 20000},
	dataset.Record{Age: 30, Income: 30000},
	dataset.Record{Age: 40, Income: 60000},
)

func TestPredictWithoutModels(t *testing.T) {
	p, err := pipeline.Predict(pipeline.NewInput(34, 10000), ds, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Cluster != -1 || p.Group != nil {
		t.Errorf("expected no cluster or group, got %+v", p)
	}
	if p.Nearest.Age != 30 || p.Nearest.Income != 25000 || p.Nearest.Count != 2 {
		t.Errorf("unexpected nearest match %+v", p.Nearest)
	}
}

func TestPredictGroup(t *testing.T) {
	c, err := classify.NewClassifier(ds)
	if err != nil {
		t.Fatal(err)
	}
	p, err := pipeline.Predict(pipeline.NewInput(40, 90000), ds, nil, &c)
	if err != nil {
		t.Fatal(err)
	}
	if p.Group == nil || p.Group.Group != classify.High || p.Group.Count != 1 {
		t.Errorf("unexpected group %+v", p.Group)
	}
	if !p.Nearest.Exact {
		t.Error("expected an exact match")
	}
}

func TestPredictEmpty(t *testing.T) {
	_, err := pipeline.Predict(pipeline.NewInput(30, 1000), dataset.New(), nil, nil)
	if !stats.IsInvalidInput(err) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
