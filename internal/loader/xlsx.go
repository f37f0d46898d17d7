package loader

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/p-robot/popart-dashboard/internal/model"
)

// LoadXLSX 解析 Excel 格式的结果文件，取第一个工作表，
// 表头与类型规则同 CSV
func LoadXLSX(path string) (*model.ResultTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, &model.SchemaError{File: filepath.Base(path), Missing: model.RequiredColumns}
	}

	return buildTable(filepath.Base(path), rows[0], rows[1:])
}
