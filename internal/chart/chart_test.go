package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/p-robot/popart-dashboard/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testTable(n int) *model.ResultTable {
	rows := make([]model.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, model.Row{
			Year: 1990 + i,
			Values: map[string]float64{
				model.ColIncidence:   0.01 + float64(i)/1000,
				model.ColPopulationM: 1000 + float64(i),
				model.ColPopulationF: 2000 + float64(i),
			},
		})
	}
	return model.NewResultTable("sim.csv", rows)
}

func multiSpec(t *testing.T) model.SeriesSpec {
	t.Helper()
	spec, err := model.NewMultiSeries("Pop", "Population by sex",
		[]string{model.ColPopulationM, model.ColPopulationF},
		[]string{"Male", "Female"},
		[]string{"#D55E00", "#0072B2"})
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	return spec
}

func TestBuildPayload_SingleIsWide(t *testing.T) {
	t.Parallel()

	spec := model.NewSingleSeries("Incidence", "HIV incidence", model.ColIncidence, "#D55E00")
	p := BuildPayload(testTable(3), spec)

	if p.Kind != model.SeriesSingle {
		t.Fatalf("unexpected kind: %v", p.Kind)
	}
	if p.Long != nil {
		t.Fatalf("single series should not carry long-form rows")
	}
	ys, ok := p.Wide[model.ColIncidence]
	if !ok || len(ys) != 3 {
		t.Fatalf("unexpected wide column: %v", p.Wide)
	}
	if p.Colors["HIV incidence"] != "#D55E00" {
		t.Fatalf("unexpected colors: %v", p.Colors)
	}
}

func TestBuildPayload_MultiIsLong(t *testing.T) {
	t.Parallel()

	p := BuildPayload(testTable(3), multiSpec(t))

	if p.Wide != nil {
		t.Fatalf("multi series should not carry wide columns")
	}
	if len(p.Long) != 6 {
		t.Fatalf("unexpected long-form row count: %d", len(p.Long))
	}
	if p.Colors["Male"] != "#D55E00" || p.Colors["Female"] != "#0072B2" {
		t.Fatalf("unexpected color domain: %v", p.Colors)
	}
}

func TestRenderPNG_Smoke(t *testing.T) {
	t.Parallel()

	png, err := RenderPNG(testTable(5), multiSpec(t), 0, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestRenderPNG_SinglePoint(t *testing.T) {
	t.Parallel()

	spec := model.NewSingleSeries("Incidence", "HIV incidence", model.ColIncidence, "#D55E00")
	png, err := RenderPNG(testTable(1), spec, 400, 300)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("output is not a PNG")
	}
}

func TestRenderPNG_EmptyRange(t *testing.T) {
	t.Parallel()

	_, err := RenderPNG(testTable(0), multiSpec(t), 0, 0)
	if !errors.Is(err, model.ErrEmptyRange) {
		t.Fatalf("expected ErrEmptyRange, got %v", err)
	}
}
