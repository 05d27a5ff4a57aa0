package pipeline

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/lookup"
)

// Input is the age and income a user asks about.
type Input struct {
	Age    int     `json:"age"`
	Income float64 `json:"income"`
}

// NewInput creates a new pipeline input.
func NewInput(age int, income float64) Input {
	return Input{Age: age, Income: income}
}

// Point is the input as an (age, income) vector.
func (i Input) Point() []float64 {
	return []float64{float64(i.Age), i.Income}
}

// Predict derives every value for an input: the nearest-age income from ds, the predicted cluster when model is not
// nil, and the income group when classifier is not nil. It has no side effects.
func Predict(in Input, ds dataset.Dataset, model *cluster.Model, classifier *classify.Classifier) (PredictionResult, error) {
	nearest, err := lookup.Nearest(in.Age, ds)
	if err != nil {
		return PredictionResult{}, err
	}
	p := PredictionResult{
		Input:   in,
		Cluster: -1,
		Nearest: nearest,
	}
	if model != nil {
		p.Cluster, err = model.Predict(in.Point())
		if err != nil {
			return PredictionResult{}, err
		}
	}
	if classifier != nil {
		s := classifier.Summarise(classifier.Classify(in.Income))
		p.Group = &s
	}
	return p, nil
}
