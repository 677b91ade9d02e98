package model

// Chart types
const (
	ChartTypeBar  = "bar"
	ChartTypeLine = "line"
)

// Value formats tell renderers how to print chart values
const (
	ValueFormatCount   = "count"
	ValueFormatHours   = "hours"
	ValueFormatUSD     = "usd"
	ValueFormatPercent = "percent"
)

// ChartConfig describes one chart independently of any charting library
type ChartConfig struct {
	ID          string        `json:"id"`
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Series      []ChartSeries `json:"series"`
	ValueFormat string        `json:"valueFormat"`
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint represents a single data point
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
