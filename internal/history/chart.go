package history

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart 把找到浮漂的记录画成散点图(屏幕坐标), 按等待结果分组, 颜色表示权重
func RenderChart(w io.Writer, casts []Cast) error {
	series := map[string][]opts.ScatterData{}
	maxWeight := 0.0
	found := 0
	for _, c := range casts {
		if !c.Found {
			continue
		}
		found++
		maxWeight = max(maxWeight, c.Weight)
		series[c.Outcome] = append(series[c.Outcome], opts.ScatterData{
			Value: []interface{}{c.Position.X, c.Position.Y, c.Weight},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Fishing Casts", Theme: "dark", Width: "1200px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{Title: "Bobber positions", Subtitle: fmt.Sprintf("casts=%d found=%d", len(casts), found)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (px)", NameLocation: "middle", NameGap: 40}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxWeight),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#fde725"}},
		}),
	)

	for _, outcome := range []string{OutcomeAppeared, OutcomeFaded, OutcomeTimedOut} {
		if len(series[outcome]) == 0 {
			continue
		}
		scatter.AddSeries(outcome, series[outcome], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}

	return scatter.Render(w)
}
