package analysis

import (
	"math"
	"testing"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/desert"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

func newSim(t *testing.T, n int) *desert.Simulation {
	t.Helper()
	cfg := desert.DefaultConfig()
	cfg.Box = geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: 1, Y: 1})
	cfg.NX, cfg.NY = n, n
	cfg.SandMin, cfg.SandMax = 0.2, 0.2
	s, err := desert.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSummarizeFlatFieldHasZeroStdDev(t *testing.T) {
	s := newSim(t, 8)
	summary := Summarize(s)
	if summary.StdHeight > 1e-9 {
		t.Fatalf("StdHeight = %v, want ~0 on a uniform field", summary.StdHeight)
	}
	if summary.MinHeight != summary.MaxHeight {
		t.Fatalf("min/max mismatch on uniform field: %v vs %v", summary.MinHeight, summary.MaxHeight)
	}
}

func TestDominantWavelengthDetectsPeriodicSignal(t *testing.T) {
	n := 64
	period := 8.0
	row := make([]float64, n)
	for i := range row {
		row[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	got := DominantWavelength(row)
	if math.Abs(got-period) > 1e-6 {
		t.Fatalf("DominantWavelength = %v, want %v", got, period)
	}
}

func TestDominantWavelengthZeroOnTooShortRow(t *testing.T) {
	if got := DominantWavelength([]float64{1, 2}); got != 0 {
		t.Fatalf("DominantWavelength = %v, want 0", got)
	}
}

func TestDominantWavelengthZeroOnFlatRow(t *testing.T) {
	row := make([]float64, 32)
	for i := range row {
		row[i] = 0.3
	}
	if got := DominantWavelength(row); got != 0 {
		t.Fatalf("DominantWavelength = %v, want 0 for a flat signal", got)
	}
}
