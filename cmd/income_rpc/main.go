package main

import (
	"github.com/alexflint/go-arg"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/cmd/income_rpc/incomerpc"
	"github.com/hscells/incomegroup/config"
	"github.com/hscells/incomegroup/dataset"
	"log"
	"net"
)

type args struct {
	Config string `arg:"-c" help:"path to a toml or properties configuration file"`
	Addr   string `arg:"-a" help:"address to listen on (overrides server.rpc_addr)"`
}

func (args) Version() string {
	return "income_rpc 19.Oct.2026"
}

func (args) Description() string {
	return `rpc server for classifying, looking up and clustering incomes`
}

func main() {
	var args args
	arg.MustParse(&args)

	c, err := config.Load(args.Config)
	if err != nil {
		log.Fatalln(err)
	}
	if len(args.Addr) > 0 {
		c.Server.RPCAddr = args.Addr
	}

	models, err := cluster.NewCache(c.Cluster.CacheSize)
	if err != nil {
		log.Fatalln(err)
	}

	data := dataset.NewService(c.Source())
	if _, err := data.Dataset(); err != nil {
		log.Fatalln(err)
	}

	log.Println("initialising server...")
	addr, err := net.ResolveTCPAddr("tcp", c.Server.RPCAddr)
	if err != nil {
		panic(err)
	}
	inbound, err := net.ListenTCP("tcp", addr)
	if err != nil {
		panic(err)
	}

	err = incomerpc.Serve(inbound, &incomerpc.Income{
		Data:           data,
		Models:         models,
		ClusterOptions: c.ClusterOptions(),
		GroupOptions:   c.GroupOptions(),
	})
	if err != nil {
		panic(err)
	}
}
