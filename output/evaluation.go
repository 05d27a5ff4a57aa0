package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
)

// EvaluationFormatter outputs model evaluations, keyed by model (e.g. the number of clusters) and then by measure.
type EvaluationFormatter func(results map[string]map[string]float64) (string, error)

// JsonEvaluationFormatter outputs evaluations in a JSON format.
func JsonEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	v, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs evaluations in CSV format, one row per model. Rows and measure columns are sorted by
// name, with numeric model names in numeric order.
func CsvEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	var models []string
	measures := make(map[string]bool)
	for model, scores := range results {
		models = append(models, model)
		for measure := range scores {
			measures[measure] = true
		}
	}
	sort.Slice(models, func(i, j int) bool {
		a, errA := strconv.Atoi(models[i])
		b, errB := strconv.Atoi(models[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return models[i] < models[j]
	})
	headers := make([]string, 0, len(measures))
	for measure := range measures {
		headers = append(headers, measure)
	}
	sort.Strings(headers)

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write(append([]string{"Model"}, headers...))
	for _, model := range models {
		record := make([]string, len(headers)+1)
		record[0] = model
		for i, measure := range headers {
			record[i+1] = strconv.FormatFloat(results[model][measure], 'f', -1, 64)
		}
		w.Write(record)
	}
	w.Flush()
	return b.String(), w.Error()
}

// EvaluationFormatters maps the names formats are selected by to their formatter.
var EvaluationFormatters = map[string]EvaluationFormatter{
	"csv":  CsvEvaluationFormatter,
	"json": JsonEvaluationFormatter,
}
