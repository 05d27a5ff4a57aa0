package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/hscells/incomegroup"
	"github.com/hscells/incomegroup/config"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/output"
	"github.com/hscells/incomegroup/pipeline"
	"log"
)

type args struct {
	Config string  `help:"Path to a toml or properties configuration file" arg:"-c"`
	K      int     `help:"Number of clusters (overrides cluster.k)" arg:"-k"`
	Age    int     `help:"Your age" arg:"-a"`
	Income float64 `help:"Your income in dollars" arg:"-i"`
	Find   bool    `help:"Find the income group of the age and income" arg:"-f"`
}

func (args) Version() string {
	return "income_group 19.Oct.2026"
}

func (args) Description() string {
	return `find the income group, cluster and nearest-age income of a person`
}

func main() {
	var args args
	arg.MustParse(&args)

	c, err := config.Load(args.Config)
	if err != nil {
		log.Fatalln(err)
	}
	if args.K > 0 {
		c.Cluster.K = args.K
	}

	components := []func() interface{}{
		incomegroup.Clustering(c.ClusterOptions()...),
		incomegroup.Grouping(c.GroupOptions()...),
	}
	if args.Find {
		components = append(components, incomegroup.Input(args.Age, args.Income))
	}

	p := incomegroup.NewPipeline(dataset.NewService(c.Source()), components...)
	results := make(chan pipeline.Result)
	go p.Execute(results)

	for result := range results {
		switch result.Type {
		case pipeline.Dataset:
			min, max := result.Dataset.AgeBounds()
			fmt.Printf("ages in the dataset range from %d to %d\n", min, max)
			if args.Find {
				if err := result.Dataset.CheckAge(args.Age); err != nil {
					log.Fatalln(err)
				}
			}
		case pipeline.Prompt:
			fmt.Println("enter an age and income with --age and --income, then pass --find to find the income group")
		case pipeline.Prediction:
			pr := result.Prediction
			fmt.Println(output.GroupSummary(*pr.Group))
			fmt.Printf("cluster %d of %d\n", pr.Cluster, c.Cluster.K)
			fmt.Println(output.LookupSummary(pr.Input.Age, pr.Nearest))
		case pipeline.Error:
			log.Fatalln(result.Error)
		}
	}
}
