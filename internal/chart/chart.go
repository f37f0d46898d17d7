// Package chart 把过滤后的结果表变成图表产物：
// 浏览器端渲染用的 JSON 载荷，以及服务端 go-chart 绘制的 PNG。
package chart

import (
	"bytes"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/p-robot/popart-dashboard/internal/model"
)

// 默认画布尺寸
const (
	DefaultWidth  = 900
	DefaultHeight = 420
)

// Payload 浏览器端折线图所需的数据与声明式编码。
// 单列指标组直接给宽表（x 列 + 一列 y），多列指标组给长表
// (year, label, value)，配色是固定的 label→color 映射。
type Payload struct {
	Key     string               `json:"key"`
	Name    string               `json:"name"`
	Kind    model.SeriesKind     `json:"kind"`
	X       string               `json:"x"`
	Years   []int                `json:"years"`
	Columns []string             `json:"columns"`
	Wide    map[string][]float64 `json:"wide,omitempty"`
	Long    []model.LongFormRow  `json:"long,omitempty"`
	Colors  map[string]string    `json:"colors"`
}

// BuildPayload 组装图表载荷
func BuildPayload(t *model.ResultTable, spec model.SeriesSpec) Payload {
	p := Payload{
		Key:     spec.Key,
		Name:    spec.Name,
		Kind:    spec.Kind,
		X:       model.ColYear,
		Years:   t.Years(),
		Columns: spec.Columns,
		Colors:  spec.ColorByLabel(),
	}

	if spec.Kind == model.SeriesSingle {
		p.Wide = map[string][]float64{spec.Columns[0]: t.Column(spec.Columns[0])}
		return p
	}
	p.Long = model.Reshape(t, spec)
	return p
}

// RenderPNG 服务端渲染折线图。空表无法成图，返回 ErrEmptyRange。
func RenderPNG(t *model.ResultTable, spec model.SeriesSpec, width, height int) ([]byte, error) {
	if t.Len() == 0 {
		return nil, model.ErrEmptyRange
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	xs := make([]float64, t.Len())
	for i, y := range t.Years() {
		xs[i] = float64(y)
	}

	colors := spec.ColorByLabel()
	series := make([]chart.Series, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		label, _ := spec.Label(col)
		ys := t.Column(col)
		st := lineStyle(colors[label])
		if len(xs) == 1 {
			// 单点无法画线段，复制一个点撑出可见线
			series = append(series, chart.ContinuousSeries{
				Name:    label,
				XValues: []float64{xs[0], xs[0] + 1},
				YValues: []float64{ys[0], ys[0]},
				Style:   st,
			})
			continue
		}
		series = append(series, chart.ContinuousSeries{Name: label, XValues: xs, YValues: ys, Style: st})
	}

	ch := chart.Chart{
		Title:      spec.Name,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 32}},
		XAxis: chart.XAxis{
			Name:           "Year",
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineStyle(hexColor string) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(hexColor, "#")),
		StrokeWidth: 2,
	}
}
