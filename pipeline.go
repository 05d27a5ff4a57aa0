// Package incomegroup provides a pipeline for grouping people by age and income, both by k-means clustering and by
// income percentile thresholds.
package incomegroup

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/eval"
	"github.com/hscells/incomegroup/output"
	"github.com/hscells/incomegroup/pipeline"
	"github.com/pkg/errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// Pipeline contains all the information for executing one run over a dataset.
type Pipeline struct {
	Service         *dataset.Service
	ModelCache      *cluster.Cache
	Clustering      *ClusteringConfiguration
	Grouping        *GroupingConfiguration
	Evaluation      *EvaluationConfiguration
	TableFormatters []output.TableFormatter
	Plot            PlotOutput
	Input           *pipeline.Input
}

// ClusteringConfiguration specifies that the dataset should be clustered, and how.
type ClusteringConfiguration struct {
	Options []cluster.Option
}

// GroupingConfiguration specifies that the dataset should be split into income groups, and how.
type GroupingConfiguration struct {
	Options []classify.Option
}

// EvaluationConfiguration specifies that models should be fitted for each of Ks and scored against the income groups.
type EvaluationConfiguration struct {
	Ks         []int
	Evaluators []eval.Evaluator
}

// PlotOutput configures where a scatter plot is written. The format follows the file extension: .html writes an
// interactive chart, anything else is saved by gonum/plot (png, svg, pdf, ...).
type PlotOutput struct {
	Path  string
	Title string
}

// Clustering adds k-means clustering to the pipeline.
func Clustering(options ...cluster.Option) func() interface{} {
	return func() interface{} {
		return ClusteringConfiguration{Options: options}
	}
}

// Grouping adds income grouping to the pipeline.
func Grouping(options ...classify.Option) func() interface{} {
	return func() interface{} {
		return GroupingConfiguration{Options: options}
	}
}

// Evaluation adds an evaluation of each number of clusters in ks to the pipeline. Every measure is used when no
// evaluators are given.
func Evaluation(ks []int, evaluators ...eval.Evaluator) func() interface{} {
	return func() interface{} {
		if len(evaluators) == 0 {
			evaluators = eval.Evaluators
		}
		return EvaluationConfiguration{Ks: ks, Evaluators: evaluators}
	}
}

// TableOutput adds table formats to the pipeline.
func TableOutput(formatters ...output.TableFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// ScatterOutput configures a scatter plot.
func ScatterOutput(path string) func() interface{} {
	return func() interface{} {
		return PlotOutput{Path: path}
	}
}

// Input sets the age and income the pipeline derives values for.
func Input(age int, income float64) func() interface{} {
	return func() interface{} {
		return pipeline.NewInput(age, income)
	}
}

// ModelCache shares fitted models between pipelines.
func ModelCache(c *cluster.Cache) func() interface{} {
	return func() interface{} {
		return c
	}
}

// NewPipeline creates a new pipeline. The data service is required. Additional components are provided via the
// optional functional arguments.
func NewPipeline(svc *dataset.Service, components ...func() interface{}) Pipeline {
	p := Pipeline{
		Service: svc,
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case ClusteringConfiguration:
			p.Clustering = &v
		case GroupingConfiguration:
			p.Grouping = &v
		case EvaluationConfiguration:
			p.Evaluation = &v
		case []output.TableFormatter:
			p.TableFormatters = v
		case PlotOutput:
			p.Plot = v
		case pipeline.Input:
			p.Input = &v
		case *cluster.Cache:
			p.ModelCache = v
		}
	}

	return p
}

func (p Pipeline) fit(ds dataset.Dataset, options ...cluster.Option) (*cluster.Model, error) {
	if p.ModelCache != nil {
		return p.ModelCache.Fit(ds, options...)
	}
	return cluster.Fit(ds.Points(), options...)
}

func (p Pipeline) evaluate(ds dataset.Dataset, classifier *classify.Classifier) (map[string]map[string]float64, error) {
	if classifier == nil {
		cl, err := classify.NewClassifier(ds)
		if err != nil {
			return nil, err
		}
		classifier = &cl
	}
	groups := classifier.ClassifyAll()

	var base []cluster.Option
	if p.Clustering != nil {
		base = p.Clustering.Options
	}
	results := make(map[string]map[string]float64, len(p.Evaluation.Ks))
	for _, k := range p.Evaluation.Ks {
		model, err := p.fit(ds, append(append([]cluster.Option{}, base...), cluster.K(k))...)
		if err != nil {
			return nil, errors.Wrapf(err, "k=%d", k)
		}
		results[strconv.Itoa(k)] = eval.Evaluate(p.Evaluation.Evaluators, model, ds.Points(), groups)
	}
	return results, nil
}

// Execute runs the pipeline, sending each result through c as it is computed. The channel is closed once the pipeline
// is done or an error has been sent.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	runID := uuid.New().String()
	log.Printf("starting pipeline run %s\n", runID)

	fail := func(err error) {
		c <- pipeline.Result{
			RunID: runID,
			Error: err,
			Type:  pipeline.Error,
		}
	}

	if p.Service == nil {
		fail(errors.New("pipeline has no dataset service"))
		return
	}

	ds, err := p.Service.Dataset()
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{
		RunID:   runID,
		Dataset: ds,
		Type:    pipeline.Dataset,
	}

	var model *cluster.Model
	if p.Clustering != nil {
		log.Println("clustering dataset...")
		model, err = p.fit(ds, p.Clustering.Options...)
		if err != nil {
			fail(errors.Wrap(err, "clustering"))
			return
		}
		centroids := make([]string, len(p.TableFormatters))
		for i, formatter := range p.TableFormatters {
			centroids[i], err = formatter(output.CentroidTable(model))
			if err != nil {
				fail(err)
				return
			}
		}
		c <- pipeline.Result{
			RunID:     runID,
			Model:     model,
			Centroids: centroids,
			Type:      pipeline.Clusters,
		}
	}

	var classifier *classify.Classifier
	if p.Grouping != nil {
		log.Println("computing income group thresholds...")
		cl, err := classify.NewClassifier(ds, p.Grouping.Options...)
		if err != nil {
			fail(errors.Wrap(err, "grouping"))
			return
		}
		classifier = &cl
		summaries := make([]classify.Summary, len(classify.Groups))
		for i, g := range classify.Groups {
			summaries[i] = cl.Summarise(g)
		}
		c <- pipeline.Result{
			RunID:      runID,
			Thresholds: cl.Thresholds,
			Summaries:  summaries,
			Type:       pipeline.Thresholds,
		}
	}

	if p.Evaluation != nil {
		log.Println("evaluating number of clusters...")
		evaluations, err := p.evaluate(ds, classifier)
		if err != nil {
			fail(errors.Wrap(err, "evaluating"))
			return
		}
		c <- pipeline.Result{
			RunID:       runID,
			Evaluations: evaluations,
			Type:        pipeline.Evaluation,
		}
	}

	if len(p.TableFormatters) > 0 {
		t := output.NewTable(ds)
		if model != nil {
			t = t.WithClusters(model.Labels)
		}
		if classifier != nil {
			t = t.WithGroups(classifier.ClassifyAll())
		}
		df, err := t.DataFrame()
		if err != nil {
			fail(err)
			return
		}
		tables := make([]string, len(p.TableFormatters))
		for i, formatter := range p.TableFormatters {
			tables[i], err = formatter(df)
			if err != nil {
				fail(err)
				return
			}
		}
		c <- pipeline.Result{
			RunID:  runID,
			Tables: tables,
			Type:   pipeline.Table,
		}
	}

	if len(p.Plot.Path) > 0 {
		if err := p.plot(ds, model, classifier); err != nil {
			fail(errors.Wrap(err, "plotting"))
			return
		}
		c <- pipeline.Result{
			RunID:    runID,
			PlotPath: p.Plot.Path,
			Type:     pipeline.Plot,
		}
	}

	if p.Input == nil {
		c <- pipeline.Result{
			RunID: runID,
			Type:  pipeline.Prompt,
		}
	} else {
		prediction, err := pipeline.Predict(*p.Input, ds, model, classifier)
		if err != nil {
			fail(err)
			return
		}
		c <- pipeline.Result{
			RunID:      runID,
			Prediction: prediction,
			Type:       pipeline.Prediction,
		}
	}

	log.Printf("completed pipeline run %s\n", runID)
	c <- pipeline.Result{
		RunID: runID,
		Type:  pipeline.Done,
	}
}

// ScatterOptions chooses how a scatter plot of ds is coloured: by cluster when there is a model, otherwise by income
// group when there is a classifier.
func ScatterOptions(ds dataset.Dataset, model *cluster.Model, classifier *classify.Classifier, input *pipeline.Input) []func(c *output.ScatterConfig) {
	var options []func(c *output.ScatterConfig)
	switch {
	case model != nil:
		options = append(options,
			output.ScatterTitle(fmt.Sprintf("K-Means Clustering (k = %d)", model.K)),
			output.ScatterLabels(model.Labels, output.ClusterLegend(model.K)))
	case classifier != nil:
		groups := classifier.ClassifyAll()
		labels := make([]int, len(groups))
		legend := make([]string, len(classify.Groups))
		for i, g := range groups {
			labels[i] = int(g)
		}
		for i, g := range classify.Groups {
			legend[i] = g.String()
		}
		options = append(options,
			output.ScatterTitle("Income Groups"),
			output.ScatterLabels(labels, legend))
	}
	if input != nil {
		options = append(options, output.ScatterHighlight(input.Age, input.Income))
	}
	return options
}

func (p Pipeline) plot(ds dataset.Dataset, model *cluster.Model, classifier *classify.Classifier) error {
	options := ScatterOptions(ds, model, classifier, p.Input)
	if len(p.Plot.Title) > 0 {
		options = append(options, output.ScatterTitle(p.Plot.Title))
	}
	if strings.HasSuffix(strings.ToLower(p.Plot.Path), ".html") {
		chart, err := output.NewEchartsScatter(ds, options...)
		if err != nil {
			return err
		}
		f, err := os.Create(p.Plot.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return chart.Render(f)
	}
	plt, err := output.NewScatter(ds, options...)
	if err != nil {
		return err
	}
	return output.SavePlot(plt, p.Plot.Path)
}
