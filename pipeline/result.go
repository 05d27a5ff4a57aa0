// Package pipeline holds the values passed through an income grouping pipeline.
package pipeline

import (
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/cluster"
	"github.com/hscells/incomegroup/dataset"
	"github.com/hscells/incomegroup/lookup"
)

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Dataset indicates the dataset was loaded.
	Dataset ResultType = iota
	// Clusters is a fitted clustering model.
	Clusters
	// Thresholds are the income group thresholds and group summaries.
	Thresholds
	// Evaluation scores models fitted with each evaluated number of clusters.
	Evaluation
	// Table is the dataset with derived columns, rendered by each table formatter.
	Table
	// Plot indicates a scatter plot was written.
	Plot
	// Prediction is the derived values for a user input.
	Prediction
	// Prompt indicates there was no user input to derive values for.
	Prompt
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

// PredictionResult holds every value derived for one user input. Cluster is -1 when no clustering was performed, and Group
// is only set when grouping was performed.
type PredictionResult struct {
	Input   Input             `json:"input"`
	Cluster int               `json:"cluster"`
	Group   *classify.Summary `json:"group,omitempty"`
	Nearest lookup.Match      `json:"nearest"`
}

// Result is the output of a pipeline. Evaluations are keyed by the number of clusters, then by measure.
type Result struct {
	RunID       string
	Type        ResultType
	Dataset     dataset.Dataset
	Model       *cluster.Model
	Centroids   []string
	Thresholds  classify.Thresholds
	Summaries   []classify.Summary
	Evaluations map[string]map[string]float64
	Tables      []string
	PlotPath    string
	Prediction  PredictionResult
	Error       error
}
