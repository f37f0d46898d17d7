package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/loader"
	"github.com/p-robot/popart-dashboard/internal/metrics"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// metricsResponse 头条指标。区间内无数据时对应字段为 null，
// 前端渲染占位符而不是报错。
type metricsResponse struct {
	Inside  *metrics.Summary `json:"inside"`
	Outside *metrics.Summary `json:"outside,omitempty"`
	Delta   *metrics.Delta   `json:"delta,omitempty"`
	Message string           `json:"message,omitempty"`
}

// GetMetrics 计算区间内的头条指标；outside=1 时叠加周边区域对照
// GET /api/metrics?file=&from=&to=&outside=1
func (h *Handler) GetMetrics(c *gin.Context) {
	filtered, r, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	resp := metricsResponse{}

	inside, err := metrics.Summarize(filtered)
	switch {
	case err == nil:
		resp.Inside = &inside
	case errors.Is(err, model.ErrEmptyRange):
		resp.Message = "选定年份区间内无数据"
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if wantOutside(c) {
		outside, done := h.summarizeOutside(c, r)
		if done {
			return
		}
		if outside != nil {
			resp.Outside = outside
			if resp.Inside != nil {
				d := metrics.Compare(*resp.Inside, *outside)
				resp.Delta = &d
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func wantOutside(c *gin.Context) bool {
	switch c.Query("outside") {
	case "1", "true":
		return true
	}
	return false
}

// summarizeOutside 加载配置的周边区域文件并按同一区间汇总。
// 返回 done=true 表示响应已写出（对照文件本身出错）。
func (h *Handler) summarizeOutside(c *gin.Context, r model.YearRange) (*metrics.Summary, bool) {
	outsideFile := h.settings().outsideFile
	if outsideFile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置周边区域对照文件"})
		return nil, true
	}

	path, ok := h.resolveFile(c, outsideFile)
	if !ok {
		return nil, true
	}

	table, err := loader.Load(path)
	if err != nil {
		h.renderLoadError(c, err)
		return nil, true
	}

	filtered, err := table.FilterYears(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, true
	}

	outside, err := metrics.Summarize(filtered)
	if errors.Is(err, model.ErrEmptyRange) {
		// 对照区间为空只是缺少 overlay，不算失败
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, true
	}
	return &outside, false
}
