package charts

import (
	"capitas-dashboard/internal/aggregate"
)

// Chart types renderable by any charting frontend.
const (
	TypeBar  = "bar"
	TypePie  = "pie"
	TypeLine = "line"
)

// Series is one named sequence of values aligned with the spec's labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Spec is a declarative chart description: chart type, axes, labels and
// series. It carries no aggregation logic; the same AggregateView always
// produces an identical Spec, which keeps it snapshot-testable.
type Spec struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Options names the axes and title of a built chart.
type Options struct {
	Title  string
	XLabel string
	YLabel string
}

// Build maps an AggregateView to a chart specification of the requested
// type. Group keys become labels, group values the single series.
func Build(view aggregate.View, chartType string, opts Options) Spec {
	labels := make([]string, len(view.Groups))
	values := make([]float64, len(view.Groups))
	for i, g := range view.Groups {
		labels[i] = g.Key
		values[i] = g.Value
	}
	return Spec{
		Type:   chartType,
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Labels: labels,
		Series: []Series{{Name: view.Dimension, Values: values}},
	}
}

// Bar builds a bar chart from a view.
func Bar(view aggregate.View, opts Options) Spec { return Build(view, TypeBar, opts) }

// Pie builds a pie chart from a view.
func Pie(view aggregate.View, opts Options) Spec { return Build(view, TypePie, opts) }

// Line builds a line chart from a view.
func Line(view aggregate.View, opts Options) Spec { return Build(view, TypeLine, opts) }
