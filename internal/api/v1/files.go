package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/catalog"
	"github.com/p-robot/popart-dashboard/internal/config"
)

// ListFiles 列出输出目录下的结果文件
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	entries, err := catalog.List(config.ResolveOutputDir(h.cfg))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// seriesInfo 指标组的展示元数据
type seriesInfo struct {
	Key     string            `json:"key"`
	Name    string            `json:"name"`
	Kind    string            `json:"kind"`
	Columns []string          `json:"columns"`
	Labels  []string          `json:"labels,omitempty"`
	Colors  map[string]string `json:"colors"`
}

// ListSeries 列出注册的指标组
// GET /api/series
func (h *Handler) ListSeries(c *gin.Context) {
	specs := h.registry.Specs()
	items := make([]seriesInfo, 0, len(specs))
	for _, s := range specs {
		items = append(items, seriesInfo{
			Key:     s.Key,
			Name:    s.Name,
			Kind:    string(s.Kind),
			Columns: s.Columns,
			Labels:  s.Labels,
			Colors:  s.ColorByLabel(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
