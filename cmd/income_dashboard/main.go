package main

import (
	"github.com/alexflint/go-arg"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/config"
	"github.com/hscells/incomegroup/dashboard"
	"github.com/hscells/incomegroup/dataset"
	"log"
)

type args struct {
	Config string `help:"Path to a toml or properties configuration file" arg:"-c"`
	Addr   string `help:"Address to listen on (overrides server.addr)" arg:"-a"`
}

func (args) Version() string {
	return "income_dashboard 19.Oct.2026"
}

func (args) Description() string {
	return `web dashboard for income analysis using k-means clustering`
}

func main() {
	var args args
	arg.MustParse(&args)

	c, err := config.Load(args.Config)
	if err != nil {
		log.Fatalln(err)
	}
	if len(args.Addr) > 0 {
		c.Server.Addr = args.Addr
	}

	models, err := cluster.NewCache(c.Cluster.CacheSize)
	if err != nil {
		log.Fatalln(err)
	}

	data := dataset.NewService(c.Source())
	if _, err := data.Dataset(); err != nil {
		log.Fatalln(err)
	}

	s := dashboard.NewServer(data, models,
		dashboard.ClusterOptions(c.ClusterOptions()...),
		dashboard.GroupOptions(c.GroupOptions()...),
		dashboard.DefaultK(c.Cluster.K))
	log.Fatalln(s.ListenAndServe(c.Server.Addr))
}
