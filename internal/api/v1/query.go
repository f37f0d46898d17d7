package v1

import (
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/catalog"
	"github.com/p-robot/popart-dashboard/internal/config"
	"github.com/p-robot/popart-dashboard/internal/loader"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// parseYearRange 读取 from/to 参数，缺省取配置的默认区间，
// 并钳制到配置的年份边界。钳制属于展示层职责，过滤本身不做。
func (h *Handler) parseYearRange(c *gin.Context) (model.YearRange, bool) {
	chart := h.settings().chart
	r := model.YearRange{
		From: chart.DefaultFrom,
		To:   chart.DefaultTo,
	}

	if raw := c.Query("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "非法的起始年份"})
			return model.YearRange{}, false
		}
		r.From = v
	}
	if raw := c.Query("to"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "非法的结束年份"})
			return model.YearRange{}, false
		}
		r.To = v
	}

	r.From = clamp(r.From, chart.YearMin, chart.YearMax)
	r.To = clamp(r.To, chart.YearMin, chart.YearMax)

	if !r.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "起始年份不能大于结束年份"})
		return model.YearRange{}, false
	}
	return r, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveFile 校验 file 参数并拼出输出目录内的完整路径。
// 只接受纯文件名，拒绝路径穿越。
func (h *Handler) resolveFile(c *gin.Context, name string) (string, bool) {
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 file 参数"})
		return "", false
	}
	if filepath.Base(name) != name {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的文件名"})
		return "", false
	}
	if !catalog.IsResultFile(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的文件类型"})
		return "", false
	}
	return filepath.Join(config.ResolveOutputDir(h.cfg), name), true
}

// loadFiltered 加载 file 参数指向的结果文件并按区间过滤。
// 失败时响应已写好，调用方直接返回即可。
func (h *Handler) loadFiltered(c *gin.Context) (*model.ResultTable, model.YearRange, bool) {
	r, ok := h.parseYearRange(c)
	if !ok {
		return nil, model.YearRange{}, false
	}

	path, ok := h.resolveFile(c, c.Query("file"))
	if !ok {
		return nil, model.YearRange{}, false
	}

	table, err := loader.Load(path)
	if err != nil {
		h.renderLoadError(c, err)
		return nil, model.YearRange{}, false
	}

	filtered, err := table.FilterYears(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, model.YearRange{}, false
	}
	return filtered, r, true
}

// renderLoadError 把加载错误映射为对应的 HTTP 响应。
// 单个文件出错只影响当前图表/指标，会话本身继续服务。
func (h *Handler) renderLoadError(c *gin.Context, err error) {
	var schemaErr *model.SchemaError
	var parseErr *model.ParseError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.JSON(http.StatusNotFound, gin.H{"error": "结果文件不存在（可能已被移除）"})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": schemaErr.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
