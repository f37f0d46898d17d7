package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/chart"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// lookupSpec 按路径参数取指标组
func (h *Handler) lookupSpec(c *gin.Context) (model.SeriesSpec, bool) {
	key := c.Param("key")
	spec, ok := h.registry.Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未注册的指标组: " + key})
		return model.SeriesSpec{}, false
	}
	return spec, true
}

// GetChart 返回浏览器端渲染所需的图表载荷
// GET /api/chart/:key?file=&from=&to=
func (h *Handler) GetChart(c *gin.Context) {
	spec, ok := h.lookupSpec(c)
	if !ok {
		return
	}

	filtered, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, chart.BuildPayload(filtered, spec))
}

// GetChartPNG 服务端渲染折线图
// GET /api/chart/:key/png?file=&from=&to=&w=&h=
func (h *Handler) GetChartPNG(c *gin.Context) {
	spec, ok := h.lookupSpec(c)
	if !ok {
		return
	}

	filtered, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	width, _ := strconv.Atoi(c.Query("w"))
	height, _ := strconv.Atoi(c.Query("h"))

	png, err := chart.RenderPNG(filtered, spec, width, height)
	if errors.Is(err, model.ErrEmptyRange) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "选定年份区间内无数据"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetData 数据页：Year + 指标组各列的宽表子集
// GET /api/data/:key?file=&from=&to=
func (h *Handler) GetData(c *gin.Context) {
	spec, ok := h.lookupSpec(c)
	if !ok {
		return
	}

	filtered, _, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	columns := append([]string{model.ColYear}, spec.Columns...)
	rows := make([][]interface{}, 0, filtered.Len())
	for _, row := range filtered.Rows() {
		cells := make([]interface{}, 0, len(columns))
		cells = append(cells, row.Year)
		for _, col := range spec.Columns {
			cells = append(cells, row.Values[col])
		}
		rows = append(rows, cells)
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    spec.Name,
		"columns": columns,
		"rows":    rows,
	})
}
