// Package v1 看板 HTTP API。每个请求都是一次完整的重算：
// 加载所选文件、按年份区间过滤、汇总或重排，不跨请求缓存。
package v1

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/config"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// Handler V1 API 处理器
type Handler struct {
	cfg      *config.AppConfig
	registry *model.Registry

	cfgMu     sync.Mutex
	downloads *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(cfg *config.AppConfig, registry *model.Registry) *Handler {
	return &Handler{
		cfg:       cfg,
		registry:  registry,
		downloads: newExportDownloadStore(),
	}
}

// chartSettings PATCH /api/config 可修改的字段快照。
// Gin 的请求各跑各的 goroutine，读这些字段必须和写入方
// 用同一把锁，其余配置字段启动后不再变化。
type chartSettings struct {
	chart       config.ChartConfig
	outsideFile string
}

// settings 在锁内拷贝一份可变配置
func (h *Handler) settings() chartSettings {
	h.cfgMu.Lock()
	defer h.cfgMu.Unlock()
	return chartSettings{
		chart:       h.cfg.Chart,
		outsideFile: h.cfg.Data.OutsideFile,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 结果文件目录
	router.GET("/files", h.ListFiles)

	// 指标组注册表
	router.GET("/series", h.ListSeries)

	// 头条指标（可带周边区域对照）
	router.GET("/metrics", h.GetMetrics)

	// 图表与数据页
	router.GET("/chart/:key", h.GetChart)
	router.GET("/chart/:key/png", h.GetChartPNG)
	router.GET("/data/:key", h.GetData)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
}
