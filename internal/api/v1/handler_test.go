package v1

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/p-robot/popart-dashboard/internal/config"
	"github.com/p-robot/popart-dashboard/internal/model"
)

// newTestRouter 搭一个指向临时输出目录的完整 API
func newTestRouter(t *testing.T, outputDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Data.OutputDir = outputDir
	cfg.Data.ExportDir = filepath.Join(outputDir, "exports")

	h := NewHandler(cfg, model.DefaultRegistry())
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r
}

// newTestRouterOutside 同上，并配置周边区域对照文件
func newTestRouterOutside(t *testing.T, outputDir, outsideFile string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Data.OutputDir = outputDir
	cfg.Data.ExportDir = filepath.Join(outputDir, "exports")
	cfg.Data.OutsideFile = outsideFile

	h := NewHandler(cfg, model.DefaultRegistry())
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r
}

// writeFixtureCSV 写一个带全部必需列的结果文件，
// 每行只显式给出关心的列，其余填 0
func writeFixtureCSV(t *testing.T, dir, name string, rows []map[string]string) {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(model.RequiredColumns, ","))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, 0, len(model.RequiredColumns))
		for _, col := range model.RequiredColumns {
			if v, ok := row[col]; ok {
				cells = append(cells, v)
			} else {
				cells = append(cells, "0")
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func scenarioRows() []map[string]string {
	return []map[string]string{
		{
			model.ColYear:            "2025",
			model.ColIncidence:       "0.012",
			model.ColNumberPositive:  "500",
			model.ColTotalPopulation: "10000",
		},
		{
			model.ColYear:            "2030",
			model.ColIncidence:       "0.015",
			model.ColNumberPositive:  "600",
			model.ColTotalPopulation: "11000",
		},
	}
}

func writeRawFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
