package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/p-robot/popart-dashboard/internal/chart"
)

func TestGetChart_MultiSeriesPayload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/chart/PLHIV?file=sim.csv&from=2020&to=2030")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var p chart.Payload
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
	if p.Key != "PLHIV" || p.X != "Year" {
		t.Fatalf("unexpected payload header: %+v", p)
	}
	// 2 行 × 3 列
	if len(p.Long) != 6 {
		t.Fatalf("unexpected long-form row count: %d", len(p.Long))
	}
	if len(p.Colors) != 3 {
		t.Fatalf("unexpected color domain: %v", p.Colors)
	}
}

func TestGetChart_UnknownSeries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/chart/Nope?file=sim.csv")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetChartPNG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/chart/Incidence/png?file=sim.csv&from=2020&to=2030")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("body is not a PNG")
	}
}

func TestGetChartPNG_EmptyRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/chart/Incidence/png?file=sim.csv&from=2026&to=2029")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetData_WideSubset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/data/PLHIV?file=sim.csv&from=2020&to=2030")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Name    string          `json:"name"`
		Columns []string        `json:"columns"`
		Rows    [][]interface{} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Columns) != 4 || resp.Columns[0] != "Year" {
		t.Fatalf("unexpected columns: %v", resp.Columns)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("unexpected row count: %d", len(resp.Rows))
	}
}

func TestListFilesAndSeries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/files")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var files struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &files); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(files.Items) != 1 || files.Items[0].Name != "sim.csv" {
		t.Fatalf("unexpected files: %+v", files.Items)
	}

	w = doGet(t, r, "/api/series")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var series struct {
		Items []seriesInfo `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(series.Items) == 0 {
		t.Fatalf("series registry empty")
	}
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixtureCSV(t, dir, "sim.csv", scenarioRows())
	r := newTestRouter(t, dir)

	w := doGet(t, r, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.FileCount != 1 {
		t.Fatalf("unexpected file count: %d", resp.FileCount)
	}
	if resp.YearMin != 1970 || resp.YearMax != 2030 {
		t.Fatalf("unexpected bounds: %d-%d", resp.YearMin, resp.YearMax)
	}
	if resp.Country != "Zambia" {
		t.Fatalf("unexpected trial metadata: %+v", resp)
	}
	if !resp.OutputDirOK {
		t.Fatalf("output directory reported unreadable: %+v", resp)
	}
}

func TestGetStatus_MissingOutputDir(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, filepath.Join(t.TempDir(), "missing"))

	w := doGet(t, r, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.OutputDirOK {
		t.Fatalf("expected unreadable output directory to be flagged")
	}
	if resp.FileCount != 0 {
		t.Fatalf("unexpected file count: %d", resp.FileCount)
	}
}
