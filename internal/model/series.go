package model

import (
	"fmt"
	"sort"
)

// SeriesKind 指标组类型：单列或多列
type SeriesKind string

const (
	SeriesSingle SeriesKind = "single"
	SeriesMulti  SeriesKind = "multi"
)

// SeriesSpec 一个可绘制的指标组。Single 对应一条折线（一列一色），
// Multi 对应多条折线（列、颜色、显示标签一一对应）。
// 类型在构造时确定，渲染阶段不再做动态判断。
type SeriesSpec struct {
	Key     string     `json:"key"`
	Name    string     `json:"name"`
	Kind    SeriesKind `json:"kind"`
	Columns []string   `json:"columns"`
	Colors  []string   `json:"colors"`
	Labels  []string   `json:"labels,omitempty"` // 仅 Multi

	labelByColumn map[string]string
}

// NewSingleSeries 构造单列指标组
func NewSingleSeries(key, name, column, color string) SeriesSpec {
	return SeriesSpec{
		Key:     key,
		Name:    name,
		Kind:    SeriesSingle,
		Columns: []string{column},
		Colors:  []string{color},
	}
}

// NewMultiSeries 构造多列指标组，校验列/颜色/标签长度一致
func NewMultiSeries(key, name string, columns, labels, colors []string) (SeriesSpec, error) {
	if len(columns) == 0 {
		return SeriesSpec{}, fmt.Errorf("series %s: no columns", key)
	}
	if len(colors) != len(columns) {
		return SeriesSpec{}, fmt.Errorf("series %s: %d columns but %d colors", key, len(columns), len(colors))
	}
	if len(labels) != len(columns) {
		return SeriesSpec{}, fmt.Errorf("series %s: %d columns but %d labels", key, len(columns), len(labels))
	}

	labelByColumn := make(map[string]string, len(columns))
	for i, col := range columns {
		if _, dup := labelByColumn[col]; dup {
			return SeriesSpec{}, fmt.Errorf("series %s: duplicate column %s", key, col)
		}
		labelByColumn[col] = labels[i]
	}

	return SeriesSpec{
		Key:           key,
		Name:          name,
		Kind:          SeriesMulti,
		Columns:       columns,
		Colors:        colors,
		Labels:        labels,
		labelByColumn: labelByColumn,
	}, nil
}

// Label 列名到显示标签的精确映射（全名查表，不做子串替换，
// 避免 TotalPopulation / PopulationM 这类前缀列互相污染）
func (s SeriesSpec) Label(column string) (string, bool) {
	if s.Kind == SeriesSingle {
		if len(s.Columns) == 1 && s.Columns[0] == column {
			return s.Name, true
		}
		return "", false
	}
	label, ok := s.labelByColumn[column]
	return label, ok
}

// ColorByLabel 标签到颜色的固定映射。与行序、与过滤后实际
// 出现了哪些标签无关，保证多次渲染的配色一致。
func (s SeriesSpec) ColorByLabel() map[string]string {
	m := make(map[string]string, len(s.Columns))
	for i, col := range s.Columns {
		label, _ := s.Label(col)
		m[label] = s.Colors[i]
	}
	return m
}

// LongFormRow 长表一行：(年份, 序列标签, 数值)
type LongFormRow struct {
	Year  int     `json:"year"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Reshape 将宽表按指标组熔化为长表。输出行数 = 源表行数 × 列数，
// 行序为逐列扫描（同一列的年份保持源表顺序）。纯函数，不修改源表。
// Single 指标组无需重排，图表直接消费宽表；此处仍给出长表形式，
// 标签取指标组名，便于统一的 JSON 载荷。
func Reshape(t *ResultTable, spec SeriesSpec) []LongFormRow {
	out := make([]LongFormRow, 0, t.Len()*len(spec.Columns))
	for _, col := range spec.Columns {
		label, ok := spec.Label(col)
		if !ok {
			// 构造时已保证映射完整，这里只是兜底
			label = col
		}
		for _, row := range t.Rows() {
			out = append(out, LongFormRow{
				Year:  row.Year,
				Label: label,
				Value: row.Values[col],
			})
		}
	}
	return out
}

// Registry 不可变的指标组注册表：进程启动时构建一次，
// 之后显式传给需要它的组件，不作为全局状态引用。
type Registry struct {
	keys  []string
	specs map[string]SeriesSpec
}

// NewRegistry 构建注册表，key 重复视为配置错误
func NewRegistry(specs ...SeriesSpec) (*Registry, error) {
	r := &Registry{specs: make(map[string]SeriesSpec, len(specs))}
	for _, s := range specs {
		if _, dup := r.specs[s.Key]; dup {
			return nil, fmt.Errorf("duplicate series key: %s", s.Key)
		}
		r.specs[s.Key] = s
		r.keys = append(r.keys, s.Key)
	}
	return r, nil
}

// Get 按 key 取指标组
func (r *Registry) Get(key string) (SeriesSpec, bool) {
	s, ok := r.specs[key]
	return s, ok
}

// Keys 按注册顺序返回全部 key
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Specs 按注册顺序返回全部指标组
func (r *Registry) Specs() []SeriesSpec {
	out := make([]SeriesSpec, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.specs[k])
	}
	return out
}

// AllColumns 注册表引用到的全部指标列（去重、排序），导出时使用
func (r *Registry) AllColumns() []string {
	seen := make(map[string]bool)
	for _, s := range r.specs {
		for _, c := range s.Columns {
			seen[c] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// DefaultSelectedKeys 页面默认勾选的指标组
var DefaultSelectedKeys = []string{"Incidence", "NewCasesThisYear", "PLHIV"}

// DefaultRegistry 内置的 HIV 指标组与社区人口组。
// 配色沿用 Okabe-Ito 色板。
func DefaultRegistry() *Registry {
	plhiv, err := NewMultiSeries("PLHIV", "Number of people living with HIV",
		[]string{ColNumberPositiveM, ColNumberPositiveF, ColNumberPositive},
		[]string{"Male", "Female", "Total"},
		[]string{"#D55E00", "#0072B2", "#009E73"})
	if err != nil {
		panic(err)
	}
	deaths, err := NewMultiSeries("HIVDeaths", "HIV-related deaths",
		[]string{ColNDiedFromHIV, ColNHIVPosDead},
		[]string{"Died from HIV", "HIV-positive deaths"},
		[]string{"#D55E00", "#0072B2"})
	if err != nil {
		panic(err)
	}
	population, err := NewMultiSeries("Population", "Total population size",
		[]string{ColTotalPopulation, ColPopulationF, ColPopulationM},
		[]string{"Total", "Female", "Male"},
		[]string{"#D55E00", "#0072B2", "#009E73"})
	if err != nil {
		panic(err)
	}

	reg, err := NewRegistry(
		NewSingleSeries("Incidence", "HIV incidence", ColIncidence, "#D55E00"),
		NewSingleSeries("NewCasesThisYear", "New HIV infections", ColNewCases, "#D55E00"),
		NewSingleSeries("Prevalence", "HIV prevalence", ColPrevalence, "#D55E00"),
		plhiv,
		deaths,
		population,
		NewSingleSeries("TotalDeaths", "Total deaths", ColNDead, "#D55E00"),
	)
	if err != nil {
		panic(err)
	}
	return reg
}
