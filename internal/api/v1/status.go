package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/catalog"
	"github.com/p-robot/popart-dashboard/internal/config"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	OutputDir     string   `json:"outputDir"`     // 结果文件目录
	OutputDirOK   bool     `json:"outputDirOK"`   // 目录是否可读（false 时 fileCount 不可信）
	FileCount     int      `json:"fileCount"`     // 可加载文件数
	OutsideFile   string   `json:"outsideFile"`   // 周边区域对照文件（可为空）
	YearMin       int      `json:"yearMin"`       // 年份滑杆下界
	YearMax       int      `json:"yearMax"`       // 年份滑杆上界
	DefaultFrom   int      `json:"defaultFrom"`   // 默认起始年份
	DefaultTo     int      `json:"defaultTo"`     // 默认结束年份
	Country       string   `json:"country"`       // 试验国家
	Community     string   `json:"community"`     // 试验社区编号
	TrialArm      string   `json:"trialArm"`      // 试验分组
	DefaultSeries []string `json:"defaultSeries"` // 默认勾选的指标组
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	fileCount := 0
	outputDirOK := true
	entries, err := catalog.List(config.ResolveOutputDir(h.cfg))
	if err != nil {
		// 空目录和目录不可读是两回事，前端据此提示
		log.Printf("list output directory: %v", err)
		outputDirOK = false
	} else {
		fileCount = len(entries)
	}

	s := h.settings()

	c.JSON(http.StatusOK, StatusResponse{
		OutputDir:     h.cfg.Data.OutputDir,
		OutputDirOK:   outputDirOK,
		FileCount:     fileCount,
		OutsideFile:   s.outsideFile,
		YearMin:       s.chart.YearMin,
		YearMax:       s.chart.YearMax,
		DefaultFrom:   s.chart.DefaultFrom,
		DefaultTo:     s.chart.DefaultTo,
		Country:       h.cfg.Trial.Country,
		Community:     h.cfg.Trial.Community,
		TrialArm:      h.cfg.Trial.Arm,
		DefaultSeries: model.DefaultSelectedKeys,
	})
}
