// Package desert implements the stochastic sediment-transport engine at the
// core of the desertscape simulator: saltation, reptation, wind-shadow
// deposition, abrasion and angle-of-repose stabilization over a two-layer
// (bedrock + sediment) heightfield on a flat torus.
package desert

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/field"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/noise"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/rng"
)

// next8 lists the 8-connected neighbor offsets in the order used by the
// original prototype's CheckSedimentFlowRelative/CheckBedrockFlowRelative,
// so steepest-descent ties resolve identically.
var next8 = [8]geom.Vector2i{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// Simulation owns the four scalar fields (bedrock, sediments, vegetation,
// hardness) that make up the desertscape state, and drives them forward one
// epoch at a time via Step.
type Simulation struct {
	box      geom.Box2D
	nx, ny   int
	cellSize float64

	bedrock    *field.ScalarField2D
	sediments  *field.ScalarField2D
	vegetation *field.ScalarField2D
	hardness   *field.ScalarField2D
	hasHardnessField bool

	noise noise.Source
	rng   *rng.Source

	abrasionOn   atomic.Bool
	vegetationOn atomic.Bool

	stepCount atomic.Uint64

	// mu guards cfg.Params, which SetFloatParameter/SetIntParameter may
	// mutate at any time. Readers hold an RLock only for the copy taken by
	// paramsSnapshot/baseWind; Step() holds no lock across the epoch, so a
	// mutation made while a Step runs applies to the events that read the
	// parameters after it.
	mu  sync.RWMutex
	cfg Config
}

// New constructs a Simulation from cfg. Sediments are filled from a
// deterministic uniform distribution in [cfg.SandMin, cfg.SandMax], seeded
// once from cfg.Seed. Bedrock and vegetation start at zero.
func New(cfg Config) (*Simulation, error) {
	if cfg.NX <= 0 {
		cfg.NX = defaultNX
	}
	if cfg.NY <= 0 {
		cfg.NY = defaultNY
	}
	if cfg.NX != cfg.NY {
		return nil, fmt.Errorf("%w: nx=%d ny=%d", ErrInvalidGeometry, cfg.NX, cfg.NY)
	}
	size := cfg.Box.Size()
	cellW := size.X / float64(cfg.NX)
	cellH := size.Y / float64(cfg.NY)
	if !almostEqual(cellW, cellH) {
		return nil, fmt.Errorf("%w: cell size %.6f x %.6f", ErrInvalidGeometry, cellW, cellH)
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	if cfg.Params.MaxBounce <= 0 {
		cfg.Params.MaxBounce = defaultMaxBounce
	}
	if cfg.Params.WorkerCount <= 0 {
		cfg.Params.WorkerCount = defaultWorkerCount
	}
	if cfg.Params.StabilizeEvery <= 0 {
		cfg.Params.StabilizeEvery = defaultStabilizeEvery
	}

	s := &Simulation{
		box:        cfg.Box,
		nx:         cfg.NX,
		ny:         cfg.NY,
		cellSize:   cellW,
		bedrock:    field.New(cfg.NX, cfg.NY, cfg.Box, 0),
		sediments:  field.New(cfg.NX, cfg.NY, cfg.Box, 0),
		vegetation: field.New(cfg.NX, cfg.NY, cfg.Box, 0),
		hardness:   field.New(cfg.NX, cfg.NY, cfg.Box, 0),
		noise:      noise.New(cfg.Seed),
		rng:        rng.New(cfg.Seed),
		cfg:        cfg,
	}
	s.abrasionOn.Store(cfg.AbrasionOn)
	s.vegetationOn.Store(cfg.VegetationOn)

	s.seedSediments(cfg.SandMin, cfg.SandMax)

	return s, nil
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func (s *Simulation) seedSediments(rMin, rMax float64) {
	for j := 0; j < s.ny; j++ {
		for i := 0; i < s.nx; i++ {
			s.sediments.Set(i, j, s.rng.UniformFloat64(rMin, rMax))
		}
	}
}

// NX returns the grid width in cells.
func (s *Simulation) NX() int { return s.nx }

// NY returns the grid height in cells.
func (s *Simulation) NY() int { return s.ny }

// CellSize returns the world-space edge length of a cell.
func (s *Simulation) CellSize() float64 { return s.cellSize }

// Box returns the simulation's world-space bounding box.
func (s *Simulation) Box() geom.Box2D { return s.box }

// SetAbrasionEnabled toggles the abrasion operator and its periodic bedrock
// stabilization.
func (s *Simulation) SetAbrasionEnabled(on bool) { s.abrasionOn.Store(on) }

// SetVegetationEnabled toggles vegetation retention in lift, deposition and
// reptation.
func (s *Simulation) SetVegetationEnabled(on bool) { s.vegetationOn.Store(on) }

// AbrasionEnabled reports whether abrasion is currently active.
func (s *Simulation) AbrasionEnabled() bool { return s.abrasionOn.Load() }

// VegetationEnabled reports whether vegetation retention is currently
// active.
func (s *Simulation) VegetationEnabled() bool { return s.vegetationOn.Load() }

// Height returns bedrock(i,j) + sediments(i,j).
func (s *Simulation) Height(i, j int) float64 {
	return s.bedrock.Get(i, j) + s.sediments.Get(i, j)
}

// HeightAt bilinearly samples the total height at world point p.
func (s *Simulation) HeightAt(p geom.Vector2) float64 {
	return s.bedrock.SampleBilinear(p) + s.sediments.SampleBilinear(p)
}

// Bedrock returns the bedrock elevation at (i, j).
func (s *Simulation) Bedrock(i, j int) float64 { return s.bedrock.Get(i, j) }

// Sediment returns the sediment column height at (i, j).
func (s *Simulation) Sediment(i, j int) float64 { return s.sediments.Get(i, j) }

// Vegetation returns the fractional vegetation cover at (i, j).
func (s *Simulation) Vegetation(i, j int) float64 { return s.vegetation.Get(i, j) }

// Hardness returns the bedrock weakness at (i, j), in [0, 1].
func (s *Simulation) Hardness(i, j int) float64 {
	if s.hasHardnessField {
		return s.hardness.Get(i, j)
	}
	return s.proceduralHardness(i, j)
}

// SumSediment returns the total sediment mass currently on the grid, used
// by callers checking the mass-conservation invariant.
func (s *Simulation) SumSediment() float64 { return s.sediments.Sum() }

// SumBedrock returns the total bedrock mass currently on the grid.
func (s *Simulation) SumBedrock() float64 { return s.bedrock.Sum() }

// SetBedrock overrides the bedrock layer. The supplied field must match the
// simulation's grid resolution.
func (s *Simulation) SetBedrock(f *field.ScalarField2D) error {
	if err := s.checkDims(f); err != nil {
		return err
	}
	s.bedrock = f
	return nil
}

// SetSediment overrides the sediment layer. The supplied field must match
// the simulation's grid resolution. Values are stored as given: negative
// columns are neither rejected nor clamped.
func (s *Simulation) SetSediment(f *field.ScalarField2D) error {
	if err := s.checkDims(f); err != nil {
		return err
	}
	s.sediments = f
	return nil
}

// SetVegetation supplies a vegetation cover map. Values are clamped to
// [0, 1] silently, per spec.
func (s *Simulation) SetVegetation(f *field.ScalarField2D) error {
	if err := s.checkDims(f); err != nil {
		return err
	}
	clampField01(f)
	s.vegetation = f
	return nil
}

// SetHardness supplies a bedrock weakness map, overriding the procedural
// noise-based fallback. Values are clamped to [0, 1] silently.
func (s *Simulation) SetHardness(f *field.ScalarField2D) error {
	if err := s.checkDims(f); err != nil {
		return err
	}
	clampField01(f)
	s.hardness = f
	s.hasHardnessField = true
	return nil
}

func (s *Simulation) checkDims(f *field.ScalarField2D) error {
	if f.NX() != s.nx || f.NY() != s.ny {
		return fmt.Errorf("%w: got %dx%d want %dx%d", ErrDimensionMismatch, f.NX(), f.NY(), s.nx, s.ny)
	}
	return nil
}

func clampField01(f *field.ScalarField2D) {
	for j := 0; j < f.NY(); j++ {
		for i := 0; i < f.NX(); i++ {
			f.Set(i, j, geom.Clamp01(f.Get(i, j)))
		}
	}
}

// wrappedNeighbor returns the grid cell reached by stepping (dx, dy) cell
// units away from (i, j) and wrapping onto the torus. All simulation-level
// grid-neighbor access (stabilization, reptation targets, the wind-model
// gradient) goes through this helper rather than through raw index
// arithmetic; saltation hops and shadow probes move in world space and wrap
// through snapWorld instead.
func (s *Simulation) wrappedNeighbor(i, j, dx, dy int) (int, int) {
	p := s.sediments.VertexOf(i, j)
	p = p.Add(geom.Vector2{X: float64(dx) * s.cellSize, Y: float64(dy) * s.cellSize})
	p = s.box.Wrap(p)
	return s.sediments.CellOf(p)
}

// snapWorld wraps a world-space point onto the torus.
func (s *Simulation) snapWorld(p geom.Vector2) geom.Vector2 {
	return s.box.Wrap(p)
}
