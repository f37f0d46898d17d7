// Package metrics 计算年份区间内的头条指标及主区/周边区域差值。
package metrics

import (
	"math"

	"github.com/p-robot/popart-dashboard/internal/model"
)

// Summary 区间内的头条指标：峰值发病率（百分比，两位小数）、
// 峰值感染人数与峰值总人口（取整）
type Summary struct {
	Incidence  float64 `json:"incidence"`
	PLHIV      int     `json:"plhiv"`
	Population int     `json:"population"`
}

// Delta 周边区域相对试验社区的指标差（outside - inside）。
// 舍入/取整规则与 Summary 一致，展示时绝对值与差值互相吻合。
type Delta struct {
	Incidence  float64 `json:"incidence"`
	PLHIV      int     `json:"plhiv"`
	Population int     `json:"population"`
}

// Summarize 对过滤后的子表计算头条指标。
// 空表上 max 无定义，返回 ErrEmptyRange，由调用方渲染占位符。
func Summarize(t *model.ResultTable) (Summary, error) {
	if t.Len() == 0 {
		return Summary{}, model.ErrEmptyRange
	}

	return Summary{
		Incidence:  roundPercent(maxColumn(t, model.ColIncidence)),
		PLHIV:      int(maxColumn(t, model.ColNumberPositive)),
		Population: int(maxColumn(t, model.ColTotalPopulation)),
	}, nil
}

// Compare 由两份已汇总的指标算差值。输入已按展示规则舍入，
// 因此 (A,B) 与 (B,A) 的差值严格反号。
func Compare(inside, outside Summary) Delta {
	return Delta{
		Incidence:  round2(outside.Incidence - inside.Incidence),
		PLHIV:      outside.PLHIV - inside.PLHIV,
		Population: outside.Population - inside.Population,
	}
}

// maxColumn 列最大值（调用方保证表非空）
func maxColumn(t *model.ResultTable, column string) float64 {
	rows := t.Rows()
	max := rows[0].Values[column]
	for _, r := range rows[1:] {
		if v := r.Values[column]; v > max {
			max = v
		}
	}
	return max
}

// roundPercent 比率按百分比展示：×100 后保留两位小数
func roundPercent(rate float64) float64 {
	return round2(rate * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
