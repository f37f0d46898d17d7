package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/p-robot/popart-dashboard/internal/config"
	"github.com/p-robot/popart-dashboard/internal/exporter"
	"github.com/p-robot/popart-dashboard/internal/loader"
	"github.com/p-robot/popart-dashboard/internal/model"
)

const exportDownloadTTL = 10 * time.Minute

type exportRequest struct {
	File string `json:"file"`
	From *int   `json:"from"` // 缺省取配置的默认起始年份
	To   *int   `json:"to"`   // 缺省取配置的默认结束年份
	Key  string `json:"key"`  // 可选：只导出一个指标组的列
}

// Export 把过滤后的子表写成 Excel，返回一次性下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	path, ok := h.resolveFile(c, req.File)
	if !ok {
		return
	}

	// 每个边界独立缺省，只给 from 不意味着 to 归零
	chart := h.settings().chart
	from := chart.DefaultFrom
	if req.From != nil {
		from = *req.From
	}
	to := chart.DefaultTo
	if req.To != nil {
		to = *req.To
	}
	r := model.YearRange{
		From: clamp(from, chart.YearMin, chart.YearMax),
		To:   clamp(to, chart.YearMin, chart.YearMax),
	}
	if !r.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "起始年份不能大于结束年份"})
		return
	}

	// 未指定指标组时导出注册表引用到的全部指标列
	columns := h.registry.AllColumns()
	if req.Key != "" {
		spec, ok := h.registry.Get(req.Key)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "未注册的指标组: " + req.Key})
			return
		}
		columns = spec.Columns
	}

	table, err := loader.Load(path)
	if err != nil {
		h.renderLoadError(c, err)
		return
	}
	filtered, err := table.FilterYears(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workbook, err := exporter.Export(filtered, columns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成导出文件失败"})
		return
	}
	defer workbook.Close()

	exportDir, err := config.EnsureExportDir(h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出目录失败"})
		return
	}

	outPath := filepath.Join(exportDir, uuid.New().String()+".xlsx")
	if err := workbook.SaveAs(outPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
		return
	}

	downloadName := buildExportFilename(req.File, r)
	token := h.downloads.put(outPath, downloadName, exportDownloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": downloadName,
	})
}

// DownloadExport 凭令牌下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}
	c.FileAttachment(item.filePath, item.downloadName)
}

func buildExportFilename(sourceFile string, r model.YearRange) string {
	base := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	return fmt.Sprintf("%s_%d-%d.xlsx", base, r.From, r.To)
}
