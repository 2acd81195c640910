package desert

import (
	"errors"
	"math"
	"testing"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

func smallConfig(nx, ny int, seed int64) Config {
	cfg := DefaultConfig()
	cfg.Box = geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: 1, Y: 1})
	cfg.NX = nx
	cfg.NY = ny
	cfg.Seed = seed
	cfg.SandMin = 0.2
	cfg.SandMax = 0.4
	return cfg
}

func TestNewRejectsNonSquareGrid(t *testing.T) {
	cfg := smallConfig(16, 32, 1)
	_, err := New(cfg)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("got %v, want ErrInvalidGeometry", err)
	}
}

func TestNewRejectsNonSquareCells(t *testing.T) {
	cfg := smallConfig(16, 16, 1)
	cfg.Box = geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: 2, Y: 1})
	_, err := New(cfg)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("got %v, want ErrInvalidGeometry", err)
	}
}

func TestNewDefaultsMaxBounceWhenOnlyMatterToMoveSet(t *testing.T) {
	cfg := smallConfig(8, 8, 1)
	cfg.Params = Params{MatterToMove: 0.05}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.cfg.Params.MaxBounce <= 0 {
		t.Fatalf("MaxBounce left at %d, want a positive default", s.cfg.Params.MaxBounce)
	}
}

func TestSeededSedimentIsDeterministic(t *testing.T) {
	a, err := New(smallConfig(16, 16, 42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(smallConfig(16, 16, 42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			if a.Sediment(i, j) != b.Sediment(i, j) {
				t.Fatalf("sediment mismatch at (%d,%d): %v != %v", i, j, a.Sediment(i, j), b.Sediment(i, j))
			}
		}
	}
}

func TestSeededSedimentWithinBounds(t *testing.T) {
	s, err := New(smallConfig(16, 16, 7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			v := s.Sediment(i, j)
			if v < 0.2 || v > 0.4 {
				t.Fatalf("sediment at (%d,%d) = %v out of [0.2, 0.4]", i, j, v)
			}
		}
	}
}

func TestSetFieldsRejectWrongDimensions(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wrong := smallConfig(4, 4, 1)
	wrongSim, err := New(wrong)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SetBedrock(wrongSim.bedrock); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestSetVegetationClampsToUnitRange(t *testing.T) {
	s, err := New(smallConfig(4, 4, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := s.vegetation
	f.Set(0, 0, 5)
	f.Set(1, 0, -3)
	if err := s.SetVegetation(f); err != nil {
		t.Fatalf("SetVegetation: %v", err)
	}
	if s.Vegetation(0, 0) != 1 {
		t.Fatalf("Vegetation(0,0) = %v, want 1", s.Vegetation(0, 0))
	}
	if s.Vegetation(1, 0) != 0 {
		t.Fatalf("Vegetation(1,0) = %v, want 0", s.Vegetation(1, 0))
	}
}

func TestWindAtIsDeadAirWhenBaseWindIsZero(t *testing.T) {
	cfg := smallConfig(8, 8, 1)
	cfg.Wind = geom.Vector2{}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := s.windAt(4, 4)
	if math.Abs(w.X) > 1e-9 || math.Abs(w.Y) > 1e-9 {
		t.Fatalf("windAt = %v, want near zero", w)
	}
}

func TestWindAtFollowsBaseWindOverFlatTerrain(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0.3)
	w := s.windAt(4, 4)
	if w.X <= 0 {
		t.Fatalf("windAt = %v, want positive X component matching base wind", w)
	}
}

func TestShadowIsZeroInDeadAir(t *testing.T) {
	cfg := smallConfig(8, 8, 1)
	cfg.Wind = geom.Vector2{}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.shadow(4, 4, geom.Vector2{}); got != 0 {
		t.Fatalf("shadow = %v, want 0", got)
	}
}

func TestShadowIsZeroBehindFlatTerrain(t *testing.T) {
	s, err := New(smallConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0.3)
	got := s.shadow(8, 8, geom.Vector2{X: 1, Y: 0})
	if got != 0 {
		t.Fatalf("shadow over flat terrain = %v, want 0", got)
	}
}

func TestShadowRisesDownwindOfATallDune(t *testing.T) {
	// One world unit per cell, so the 0.5-unit probe step samples every half
	// cell upwind and reaches the obstacle two cells away.
	cfg := smallConfig(32, 32, 1)
	cfg.Box = geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: 32, Y: 32})
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0)
	s.bedrock.Set(16, 16, 5)
	got := s.shadow(18, 16, geom.Vector2{X: 1, Y: 0})
	if got <= 0 {
		t.Fatalf("shadow downwind of a tall obstacle = %v, want > 0", got)
	}
}

func TestStabilizeSedimentConservesMass(t *testing.T) {
	s, err := New(smallConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0)
	s.sediments.Set(8, 8, 10)
	before := s.SumSediment()
	s.stabilizeSediment(8, 8)
	after := s.SumSediment()
	if math.Abs(before-after) > 1e-6 {
		t.Fatalf("mass not conserved: before=%v after=%v", before, after)
	}
}

func TestStabilizeSedimentReachesReposeInvariant(t *testing.T) {
	s, err := New(smallConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0)
	s.sediments.Set(8, 8, 10)

	// A single stabilizeSediment call follows one downhill path and leaves
	// (8,8) itself steep; repose holds once sweeps over the grid reach a
	// fixed point.
	var neighbors [8]flowNeighbor
	tau := s.paramsSnapshot().TauSediment
	for sweep := 0; ; sweep++ {
		if sweep == 1000 {
			t.Fatalf("sediment stabilization sweeps did not reach a fixed point")
		}
		steep := 0
		for j := 0; j < s.ny; j++ {
			for i := 0; i < s.nx; i++ {
				if s.Sediment(i, j) > 0 && s.checkSedimentFlow(i, j, tau, &neighbors) > 0 {
					steep++
					s.stabilizeSediment(i, j)
				}
			}
		}
		if steep == 0 {
			break
		}
	}

	n := s.checkSedimentFlow(8, 8, tau, &neighbors)
	if n != 0 {
		t.Fatalf("cell (8,8) still has %d neighbors steeper than repose after stabilization", n)
	}
}

func TestStabilizeSedimentIsIdempotentOnFlatTerrain(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.sediments.Fill(0.3)
	before := s.SumSediment()
	s.stabilizeSediment(3, 3)
	after := s.SumSediment()
	if before != after {
		t.Fatalf("flat terrain mutated: before=%v after=%v", before, after)
	}
}

func TestStabilizeBedrockAllReachesFixedPoint(t *testing.T) {
	s, err := New(smallConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.bedrock.Set(8, 8, 50)
	s.stabilizeBedrockAll()

	for j := 0; j < s.ny; j++ {
		for i := 0; i < s.nx; i++ {
			var neighbors [8]flowNeighbor
			n := s.checkBedrockFlow(i, j, s.paramsSnapshot().TauBedrock, &neighbors)
			if n != 0 {
				t.Fatalf("cell (%d,%d) still exceeds bedrock repose after stabilizeBedrockAll", i, j)
			}
		}
	}
}

func TestWrappedNeighborCrossesTorusSeam(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	i, j := s.wrappedNeighbor(0, 0, -1, 0)
	if i != s.nx-1 || j != 0 {
		t.Fatalf("wrappedNeighbor(0,0,-1,0) = (%d,%d), want (%d,0)", i, j, s.nx-1)
	}
}

func TestStepNeverIncreasesTotalMassWithoutAbrasion(t *testing.T) {
	// Without abrasion, sediment mass can only hold steady or drop: creep
	// that skips an out-of-radius neighbor and saltation events that
	// exhaust MAX_BOUNCE without depositing both discard mass by design
	// (spec 4.5, 8.2, 9) rather than conserving it exactly.
	s, err := New(smallConfig(16, 16, 3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := s.SumSediment()
	for n := 0; n < 5; n++ {
		s.Step()
	}
	after := s.SumSediment()
	if after > before+1e-6 {
		t.Fatalf("total sediment increased without abrasion: before=%v after=%v", before, after)
	}
}

func TestStepCountAdvancesAndTriggersStabilization(t *testing.T) {
	cfg := smallConfig(16, 16, 5)
	cfg.AbrasionOn = true
	cfg.Params.StabilizeEvery = 2
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.bedrock.Set(8, 8, 50)
	var neighbors [8]flowNeighbor
	tau := s.paramsSnapshot().TauBedrock
	s.Step()
	if s.StepCount() != 1 {
		t.Fatalf("StepCount = %d, want 1", s.StepCount())
	}
	if s.checkBedrockFlow(8, 8, tau, &neighbors) == 0 {
		t.Fatalf("bedrock at (8,8) relaxed after step 1, before StabilizeEvery=2 was reached")
	}
	s.Step()
	if s.StepCount() != 2 {
		t.Fatalf("StepCount = %d, want 2", s.StepCount())
	}
	for j := 0; j < s.ny; j++ {
		for i := 0; i < s.nx; i++ {
			if s.checkBedrockFlow(i, j, tau, &neighbors) != 0 {
				t.Fatalf("cell (%d,%d) still exceeds bedrock repose after step 2", i, j)
			}
		}
	}
}

func TestSetIntParameterClampsMaxBounceToAtLeastOne(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetIntParameter("max_bounce", -5)
	if s.paramsSnapshot().MaxBounce != 1 {
		t.Fatalf("MaxBounce = %d, want 1", s.paramsSnapshot().MaxBounce)
	}
	if ok := s.SetIntParameter("unknown_key", 3); ok {
		t.Fatalf("SetIntParameter on unknown key returned true")
	}
}

func TestSetFloatParameterRejectsUnknownKey(t *testing.T) {
	s, err := New(smallConfig(8, 8, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ok := s.SetFloatParameter("unknown_key", 1); ok {
		t.Fatalf("SetFloatParameter on unknown key returned true")
	}
}
