package output

import (
	"fmt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hscells/incomegroup/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
	"io"
)

// ScatterConfig describes a scatter plot of age against income. Points are coloured by label, and Legend names each
// label.
type ScatterConfig struct {
	Title     string
	Labels    []int
	Legend    []string
	Highlight *dataset.Record
}

// ScatterTitle sets the title of the plot.
func ScatterTitle(title string) func(c *ScatterConfig) {
	return func(c *ScatterConfig) {
		c.Title = title
	}
}

// ScatterLabels colours points by labels; legend[i] is the name of label i.
func ScatterLabels(labels []int, legend []string) func(c *ScatterConfig) {
	return func(c *ScatterConfig) {
		c.Labels = labels
		c.Legend = legend
	}
}

// ScatterHighlight marks a user supplied point on the plot.
func ScatterHighlight(age int, income float64) func(c *ScatterConfig) {
	return func(c *ScatterConfig) {
		c.Highlight = &dataset.Record{Age: age, Income: income}
	}
}

func newScatterConfig(ds dataset.Dataset, options ...func(c *ScatterConfig)) (ScatterConfig, error) {
	c := ScatterConfig{Title: "Age vs Income"}
	for _, o := range options {
		o(&c)
	}
	if c.Labels == nil {
		c.Labels = make([]int, ds.Len())
		c.Legend = []string{"Records"}
	}
	if len(c.Labels) != ds.Len() {
		return c, errors.New("the length of records and labels must be the same")
	}
	for _, l := range c.Labels {
		if l < 0 || l >= len(c.Legend) {
			return c, errors.Errorf("label %d has no legend entry", l)
		}
	}
	return c, nil
}

// partition groups the records of ds by label.
func (c ScatterConfig) partition(ds dataset.Dataset) [][]dataset.Record {
	groups := make([][]dataset.Record, len(c.Legend))
	for i, r := range ds.Records {
		groups[c.Labels[i]] = append(groups[c.Labels[i]], r)
	}
	return groups
}

// NewScatter creates a static scatter plot of a dataset.
func NewScatter(ds dataset.Dataset, options ...func(c *ScatterConfig)) (*plot.Plot, error) {
	c, err := newScatterConfig(ds, options...)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Income ($)"
	p.Add(plotter.NewGrid())

	for label, records := range c.partition(ds) {
		if len(records) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(records))
		for i, r := range records {
			xys[i].X = float64(r.Age)
			xys[i].Y = r.Income
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(label)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(c.Legend[label], s)
	}

	if c.Highlight != nil {
		s, err := plotter.NewScatter(plotter.XYs{{X: float64(c.Highlight.Age), Y: c.Highlight.Income}})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = color.RGBA{R: 220, G: 20, B: 60, A: 255}
		s.GlyphStyle.Radius = vg.Points(7)
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(s)
		p.Legend.Add("Your input", s)
	}
	return p, nil
}

// WritePNG renders a plot as a PNG image.
func WritePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePlot writes a plot to a file; the format is taken from the file extension.
func SavePlot(p *plot.Plot, path string) error {
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// NewEchartsScatter creates an interactive scatter plot of a dataset that renders to HTML.
func NewEchartsScatter(ds dataset.Dataset, options ...func(c *ScatterConfig)) (*charts.Scatter, error) {
	c, err := newScatterConfig(ds, options...)
	if err != nil {
		return nil, err
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Age"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Income ($)"}),
	)
	for label, records := range c.partition(ds) {
		if len(records) == 0 {
			continue
		}
		data := make([]opts.ScatterData, len(records))
		for i, r := range records {
			data[i] = opts.ScatterData{Value: []interface{}{r.Age, r.Income}}
		}
		scatter.AddSeries(c.Legend[label], data)
	}
	if c.Highlight != nil {
		scatter.AddSeries("Your input", []opts.ScatterData{{
			Value:      []interface{}{c.Highlight.Age, c.Highlight.Income},
			SymbolSize: 20,
		}})
	}
	return scatter, nil
}

// ClusterLegend names clusters 0..k-1.
func ClusterLegend(k int) []string {
	legend := make([]string, k)
	for i := range legend {
		legend[i] = fmt.Sprintf("Cluster %d", i)
	}
	return legend
}
