package dashboard

import (
	"bytes"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/output"
	"github.com/hscells/incomegroup/pipeline"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
)

// Prompt is shown until an age and income have been submitted.
const Prompt = "Choose an age and enter an income, then press Find Income Group."

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"money": output.Money,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Income K-Means Clustering</title>
</head>
<body>
<h1>Income Analysis using K-Means Clustering</h1>
<p>Clustering people based on <b>Age</b> and <b>Income ($)</b>.</p>

<form method="get" action="/">
<label>Number of clusters
<select name="k">{{range .Ks}}<option value="{{.}}"{{if eq . $.K}} selected{{end}}>{{.}}</option>{{end}}</select>
</label>
<label>Age
<input type="range" name="age" min="{{.MinAge}}" max="{{.MaxAge}}" value="{{.Age}}" oninput="this.nextElementSibling.value = this.value">
<output>{{.Age}}</output>
</label>
<label>Income ($)
<input type="number" name="income" min="0" step="any" value="{{.Income}}">
</label>
<button type="submit" name="find" value="true">Find Income Group</button>
</form>

{{if .Prediction}}
<h2>Your Income Group</h2>
<ul>
<li id="group">{{.Group}}</li>
<li id="cluster">Cluster {{.Prediction.Cluster}}</li>
<li id="nearest">{{.Nearest}}</li>
</ul>
{{else}}
<p id="prompt">{{.Prompt}}</p>
{{end}}

<h2>Age vs Income Clustering</h2>
<img src="{{.ScatterURL}}" alt="Age vs Income scatter plot">
<p><a href="{{.ChartURL}}">Interactive chart</a></p>

<h2>Income Group Thresholds</h2>
<p>Low income is at most {{money .Thresholds.Low}}; high income is above {{money .Thresholds.High}}.</p>
<ul>{{range .Summaries}}<li>{{.Group}}: average {{money .AverageIncome}} ({{.Count}} people)</li>{{end}}</ul>

<h2>Cluster Centers</h2>
{{template "table" .Centroids}}

<h2>Clustered Income Data</h2>
{{template "table" .Records}}
</body>
</html>
{{define "table"}}<table>{{range $i, $row := .}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>{{end}}</table>{{end}}
`))

type page struct {
	Ks         []int
	K          int
	MinAge     int
	MaxAge     int
	Age        int
	Income     string
	Prompt     string
	Prediction *pipeline.PredictionResult
	Group      string
	Nearest    string
	ScatterURL string
	ChartURL   string
	Thresholds classify.Thresholds
	Summaries  []classify.Summary
	Centroids  [][]string
	Records    [][]string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	q, err := s.decode(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	ds, model, classifier, err := s.state(q.K)
	if err != nil {
		s.fail(w, err)
		return
	}

	p := page{
		K:          q.K,
		Prompt:     Prompt,
		Thresholds: classifier.Thresholds,
	}
	for k := MinK; k <= MaxK; k++ {
		p.Ks = append(p.Ks, k)
	}
	p.MinAge, p.MaxAge = ds.AgeBounds()
	p.Age = p.MinAge
	if q.Age != nil {
		if err := ds.CheckAge(*q.Age); err != nil {
			s.fail(w, err)
			return
		}
		p.Age = *q.Age
	}
	if q.Income != nil {
		p.Income = strconv.FormatFloat(*q.Income, 'f', -1, 64)
	}
	for _, g := range classify.Groups {
		p.Summaries = append(p.Summaries, classifier.Summarise(g))
	}

	scatter := url.Values{"k": {strconv.Itoa(q.K)}}
	if in, err := q.input(); err == nil && q.Find {
		prediction, err := pipeline.Predict(in, ds, model, classifier)
		if err != nil {
			s.fail(w, err)
			return
		}
		p.Prediction = &prediction
		p.Group = output.GroupSummary(*prediction.Group)
		p.Nearest = output.LookupSummary(in.Age, prediction.Nearest)
		scatter.Set("age", strconv.Itoa(in.Age))
		scatter.Set("income", p.Income)
	}
	p.ScatterURL = "/scatter.png?" + scatter.Encode()
	p.ChartURL = "/scatter.html?" + scatter.Encode()

	centroids := output.CentroidTable(model)
	p.Centroids = centroids.Records()
	df, err := output.NewTable(ds).
		WithClusters(model.Labels).
		WithGroups(classifier.ClassifyAll()).
		DataFrame()
	if err != nil {
		s.fail(w, err)
		return
	}
	p.Records = df.Records()

	b := new(bytes.Buffer)
	if err := indexTemplate.Execute(b, p); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(b.Bytes())
}
