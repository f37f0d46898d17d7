package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-robot/popart-dashboard/internal/model"
)

func writeXLSX(t *testing.T, dir, name string, header []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestLoadXLSX_RoundTrip(t *testing.T) {
	t.Parallel()

	row := make([]interface{}, len(model.RequiredColumns))
	row[0] = 2025
	for i := 1; i < len(row); i++ {
		row[i] = 0.5
	}
	path := writeXLSX(t, t.TempDir(), "sim.xlsx", model.RequiredColumns, [][]interface{}{row})

	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("unexpected row count: %d", table.Len())
	}
	if table.Rows()[0].Year != 2025 {
		t.Fatalf("unexpected year: %d", table.Rows()[0].Year)
	}
	if v := table.Rows()[0].Values[model.ColIncidence]; v != 0.5 {
		t.Fatalf("unexpected incidence: %v", v)
	}
}

func TestLoadXLSX_MissingColumn(t *testing.T) {
	t.Parallel()

	path := writeXLSX(t, t.TempDir(), "sim.xlsx",
		[]string{model.ColYear, model.ColIncidence}, nil)

	_, err := Load(path)
	var schemaErr *model.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}
