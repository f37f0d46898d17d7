package v1

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/config"
)

type configResponse struct {
	OutputDir   string `json:"outputDir"`
	OutsideFile string `json:"outsideFile"`
	YearMin     int    `json:"yearMin"`
	YearMax     int    `json:"yearMax"`
	DefaultFrom int    `json:"defaultFrom"`
	DefaultTo   int    `json:"defaultTo"`
}

// GetConfig 获取看板配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	h.cfgMu.Lock()
	defer h.cfgMu.Unlock()

	c.JSON(http.StatusOK, configResponse{
		OutputDir:   h.cfg.Data.OutputDir,
		OutsideFile: h.cfg.Data.OutsideFile,
		YearMin:     h.cfg.Chart.YearMin,
		YearMax:     h.cfg.Chart.YearMax,
		DefaultFrom: h.cfg.Chart.DefaultFrom,
		DefaultTo:   h.cfg.Chart.DefaultTo,
	})
}

type updateConfigRequest struct {
	OutsideFile *string `json:"outsideFile"`
	DefaultFrom *int    `json:"defaultFrom"`
	DefaultTo   *int    `json:"defaultTo"`
}

// UpdateConfig 修改看板配置（周边区域对照文件、默认区间）
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	h.cfgMu.Lock()
	defer h.cfgMu.Unlock()

	if req.OutsideFile != nil {
		name := *req.OutsideFile
		if name != "" && filepath.Base(name) != name {
			c.JSON(http.StatusBadRequest, gin.H{"error": "非法的文件名"})
			return
		}
		h.cfg.Data.OutsideFile = name
	}
	if req.DefaultFrom != nil {
		h.cfg.Chart.DefaultFrom = clamp(*req.DefaultFrom, h.cfg.Chart.YearMin, h.cfg.Chart.YearMax)
	}
	if req.DefaultTo != nil {
		h.cfg.Chart.DefaultTo = clamp(*req.DefaultTo, h.cfg.Chart.YearMin, h.cfg.Chart.YearMax)
	}
	if h.cfg.Chart.DefaultFrom > h.cfg.Chart.DefaultTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "起始年份不能大于结束年份"})
		return
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		// 保存失败不阻塞本次会话，配置仍在内存中生效
		log.Printf("save config: %v", err)
	}

	c.JSON(http.StatusOK, configResponse{
		OutputDir:   h.cfg.Data.OutputDir,
		OutsideFile: h.cfg.Data.OutsideFile,
		YearMin:     h.cfg.Chart.YearMin,
		YearMax:     h.cfg.Chart.YearMax,
		DefaultFrom: h.cfg.Chart.DefaultFrom,
		DefaultTo:   h.cfg.Chart.DefaultTo,
	})
}
