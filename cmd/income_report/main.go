package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/incomegroup"
	"github.com/hscells/incomegroup/config"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/output"
	"github.com/hscells/incomegroup/pipeline"
	"log"
)

var (
	name    = "income_report"
	version = "19.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Config  string   `help:"Path to a toml or properties configuration file" arg:"-c"`
	Dataset string   `help:"Path to a csv dataset (overrides dataset.path)" arg:"-d"`
	K       int      `help:"Number of clusters (overrides cluster.k)" arg:"-k"`
	Format  []string `help:"Table formats to print (csv, json, text)" arg:"-f,separate"`
	Plot    string   `help:"Write a scatter plot to this path (.png, .svg, .pdf, .html)" arg:"-p"`
	Age     *int     `help:"Age to derive values for"`
	Income  *float64 `help:"Income to derive values for"`
	Verbose bool     `help:"Print stack traces of errors" arg:"-v"`

	Evaluate         []int  `help:"Evaluate models with each of these numbers of clusters" arg:"-e,separate"`
	EvaluationFormat string `help:"Format of the evaluation (csv, json)"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
clusters a dataset of ages and incomes, splits it into income groups, and reports both
@ %s
# %s`, name, author, version)
}

func fail(err error, verbose bool) {
	if verbose {
		log.Fatalln(errors.Wrap(err, 1).ErrorStack())
	}
	log.Fatalln(err)
}

func main() {
	var args args
	arg.MustParse(&args)

	c, err := config.Load(args.Config)
	if err != nil {
		fail(err, args.Verbose)
	}
	if len(args.Dataset) > 0 {
		c.Dataset.Path = args.Dataset
	}
	if args.K > 0 {
		c.Cluster.K = args.K
	}
	if len(args.Format) == 0 {
		args.Format = []string{"text"}
	}

	if len(args.EvaluationFormat) == 0 {
		args.EvaluationFormat = "csv"
	}
	evaluationFormatter, ok := output.EvaluationFormatters[args.EvaluationFormat]
	if !ok {
		log.Fatalf("unknown evaluation format %s\n", args.EvaluationFormat)
	}

	var formatters []output.TableFormatter
	for _, f := range args.Format {
		formatter, ok := output.TableFormatters[f]
		if !ok {
			log.Fatalf("unknown format %s\n", f)
		}
		formatters = append(formatters, formatter)
	}

	components := []func() interface{}{
		incomegroup.Clustering(c.ClusterOptions()...),
		incomegroup.Grouping(c.GroupOptions()...),
		incomegroup.TableOutput(formatters...),
	}
	if len(args.Evaluate) > 0 {
		components = append(components, incomegroup.Evaluation(args.Evaluate))
	}
	if len(args.Plot) > 0 {
		components = append(components, incomegroup.ScatterOutput(args.Plot))
	}
	if args.Age != nil && args.Income != nil {
		components = append(components, incomegroup.Input(*args.Age, *args.Income))
	}

	p := incomegroup.NewPipeline(dataset.NewService(c.Source()), components...)
	results := make(chan pipeline.Result)
	go p.Execute(results)

	for result := range results {
		switch result.Type {
		case pipeline.Dataset:
			fmt.Printf("loaded %d records\n\n", result.Dataset.Len())
		case pipeline.Clusters:
			fmt.Printf("Cluster Centers (k = %d, inertia = %.2f)\n", result.Model.K, result.Model.Inertia)
			for _, table := range result.Centroids {
				fmt.Println(table)
			}
		case pipeline.Thresholds:
			fmt.Printf("Income Groups (low <= %s < middle <= %s < high)\n", output.Money(result.Thresholds.Low), output.Money(result.Thresholds.High))
			for _, s := range result.Summaries {
				fmt.Println(output.GroupSummary(s))
			}
			fmt.Println()
		case pipeline.Evaluation:
			s, err := evaluationFormatter(result.Evaluations)
			if err != nil {
				fail(err, args.Verbose)
			}
			fmt.Println("Evaluation")
			fmt.Println(s)
		case pipeline.Table:
			fmt.Println("Clustered Income Data")
			for _, table := range result.Tables {
				fmt.Println(table)
			}
		case pipeline.Plot:
			log.Printf("wrote scatter plot to %s\n", result.PlotPath)
		case pipeline.Prediction:
			pr := result.Prediction
			fmt.Printf("age %d, income %s\n", pr.Input.Age, output.Money(pr.Input.Income))
			if pr.Group != nil {
				fmt.Println(output.GroupSummary(*pr.Group))
			}
			if pr.Cluster >= 0 {
				fmt.Printf("cluster %d\n", pr.Cluster)
			}
			fmt.Println(output.LookupSummary(pr.Input.Age, pr.Nearest))
		case pipeline.Error:
			fail(result.Error, args.Verbose)
		case pipeline.Done:
			fmt.Println("Income clustering completed successfully!")
		}
	}
}
