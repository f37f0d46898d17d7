// Package loader 把结果文件解析为内存中的 ResultTable。
// 每次选择都重新读取文件，不做缓存。
package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/p-robot/popart-dashboard/internal/model"
)

// Load 按扩展名选择解析方式
func Load(path string) (*model.ResultTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported result file: %s", filepath.Base(path))
	}
}

// LoadCSV 解析 UTF-8 逗号分隔的年度输出文件。
// 第一行为表头；必需列缺失报 SchemaError，单元格解析失败报 ParseError；
// 必需列之外的列容忍并忽略。
func LoadCSV(path string) (*model.ResultTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, &model.SchemaError{File: filepath.Base(path), Missing: model.RequiredColumns}
	}

	header := records[0]
	if len(header) > 0 {
		// Excel 导出的 CSV 常带 BOM
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	return buildTable(filepath.Base(path), header, records[1:])
}

// buildTable 根据表头定位必需列并逐行做类型转换
func buildTable(file string, header []string, records [][]string) (*model.ResultTable, error) {
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaError{File: file, Missing: missing}
	}

	rows := make([]model.Row, 0, len(records))
	for i, rec := range records {
		rowNum := i + 1

		cell := func(col string) string {
			idx := colIndex[col]
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		year, err := parseYear(cell(model.ColYear))
		if err != nil {
			return nil, &model.ParseError{File: file, Row: rowNum, Column: model.ColYear, Value: cell(model.ColYear), Err: err}
		}

		values := make(map[string]float64, len(model.RequiredColumns)-1)
		for _, col := range model.RequiredColumns {
			if col == model.ColYear {
				continue
			}
			raw := cell(col)
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &model.ParseError{File: file, Row: rowNum, Column: col, Value: raw, Err: err}
			}
			values[col] = v
		}

		rows = append(rows, model.Row{Year: year, Values: values})
	}

	return model.NewResultTable(file, rows), nil
}

// parseYear 年份按整数解析；容忍 "2025.0" 这类浮点写法，
// 但带小数部分的值视为类型错误
func parseYear(raw string) (int, error) {
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("not an integer year: %s", raw)
	}
	return int(v), nil
}
