// Package incomerpc exposes income grouping over net/rpc. Errors returned by the server reach the client as
// rpc.ServerError values carrying the message only.
package incomerpc

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/lookup"
	"github.com/hscells/incomegroup/pipeline"
	"github.com/hscells/incomegroup/stats"
	"log"
	"net"
	"net/rpc"
)

// ServiceName is the name the Income service is registered under.
const ServiceName = "Income"

type ClassifyRequest struct {
	Income float64
}

type ClassifyResponse struct {
	Thresholds classify.Thresholds
	Group      classify.Summary
}

type LookupRequest struct {
	Age int
}

type LookupResponse struct {
	Match lookup.Match
}

// PredictRequest asks for every value derived for an input. A K of zero uses the server's configured k.
type PredictRequest struct {
	K     int
	Input pipeline.Input
}

type PredictResponse struct {
	Prediction pipeline.PredictionResult
}

// ClustersRequest asks for a fitted model. A K of zero uses the server's configured k.
type ClustersRequest struct {
	K int
}

type ClustersResponse struct {
	Model cluster.Model
}

// Income answers requests against the dataset loaded by Data.
type Income struct {
	Data           *dataset.Service
	Models         *cluster.Cache
	ClusterOptions []cluster.Option
	GroupOptions   []classify.Option
}

func (i *Income) model(ds dataset.Dataset, k int) (*cluster.Model, error) {
	options := append([]cluster.Option{}, i.ClusterOptions...)
	if k != 0 {
		options = append(options, cluster.K(k))
	}
	return i.Models.Fit(ds, options...)
}

func (i *Income) Classify(req ClassifyRequest, resp *ClassifyResponse) error {
	if err := stats.CheckIncome(req.Income); err != nil {
		return err
	}
	ds, err := i.Data.Dataset()
	if err != nil {
		return err
	}
	c, err := classify.NewClassifier(ds, i.GroupOptions...)
	if err != nil {
		return err
	}
	resp.Thresholds = c.Thresholds
	resp.Group = c.Summarise(c.Classify(req.Income))
	return nil
}

func (i *Income) Lookup(req LookupRequest, resp *LookupResponse) error {
	ds, err := i.Data.Dataset()
	if err != nil {
		return err
	}
	resp.Match, err = lookup.Nearest(req.Age, ds)
	return err
}

func (i *Income) Predict(req PredictRequest, resp *PredictResponse) error {
	if err := stats.CheckIncome(req.Input.Income); err != nil {
		return err
	}
	ds, err := i.Data.Dataset()
	if err != nil {
		return err
	}
	model, err := i.model(ds, req.K)
	if err != nil {
		return err
	}
	c, err := classify.NewClassifier(ds, i.GroupOptions...)
	if err != nil {
		return err
	}
	resp.Prediction, err = pipeline.Predict(req.Input, ds, model, &c)
	return err
}

func (i *Income) Clusters(req ClustersRequest, resp *ClustersResponse) error {
	ds, err := i.Data.Dataset()
	if err != nil {
		return err
	}
	model, err := i.model(ds, req.K)
	if err != nil {
		return err
	}
	resp.Model = *model
	return nil
}

// Serve registers the service and accepts connections on l until it is closed.
func Serve(l net.Listener, service *Income) error {
	server := rpc.NewServer()
	if err := server.RegisterName(ServiceName, service); err != nil {
		return err
	}
	log.Println("ready to go!")
	server.Accept(l)
	return nil
}

// Client calls a remote Income service.
type Client struct {
	client *rpc.Client
}

// Dial connects to the Income service at addr.
func Dial(addr string) (*Client, error) {
	log.Println("connecting to", addr)
	c, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{client: c}, nil
}

func (c *Client) Classify(income float64) (ClassifyResponse, error) {
	var resp ClassifyResponse
	err := c.client.Call(ServiceName+".Classify", ClassifyRequest{Income: income}, &resp)
	return resp, err
}

func (c *Client) Lookup(age int) (lookup.Match, error) {
	var resp LookupResponse
	err := c.client.Call(ServiceName+".Lookup", LookupRequest{Age: age}, &resp)
	return resp.Match, err
}

func (c *Client) Predict(k int, in pipeline.Input) (pipeline.PredictionResult, error) {
	var resp PredictResponse
	err := c.client.Call(ServiceName+".Predict", PredictRequest{K: k, Input: in}, &resp)
	return resp.Prediction, err
}

func (c *Client) Clusters(k int) (cluster.Model, error) {
	var resp ClustersResponse
	err := c.client.Call(ServiceName+".Clusters", ClustersRequest{K: k}, &resp)
	return resp.Model, err
}

func (c *Client) Close() error {
	return c.client.Close()
}
