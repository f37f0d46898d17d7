// Package exporter 把过滤后的结果子表导出为 Excel 工作簿，
// 供分析人员在看板之外继续处理。
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/p-robot/popart-dashboard/internal/model"
)

const sheetName = "Indicators"

// Export 生成一个新工作簿：表头为 Year + 指标列，
// 行序与子表一致。columns 为空时导出全部必需指标列。
func Export(t *model.ResultTable, columns []string) (*excelize.File, error) {
	if len(columns) == 0 {
		for _, c := range model.RequiredColumns {
			if c != model.ColYear {
				columns = append(columns, c)
			}
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(columns)+1)
	header = append(header, model.ColYear)
	for _, c := range columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows() {
		cells := make([]interface{}, 0, len(columns)+1)
		cells = append(cells, row.Year)
		for _, c := range columns {
			cells = append(cells, row.Values[c])
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, axis, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f, nil
}
