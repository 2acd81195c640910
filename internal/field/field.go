// Package field implements ScalarField2D, a regular 2D grid of floats over a
// world-space box with lock-free atomic accumulation, bilinear sampling and
// discrete gradients.
package field

import (
	"math"
	"sync/atomic"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

// ScalarField2D stores nx*ny float64 values in row-major order over a
// world-space box. All mutation is safe for concurrent use via AddAtomic;
// Get/Set are not synchronized with each other, matching the stochastic
// model's tolerance for transient staleness (see Simulation's docs).
type ScalarField2D struct {
	nx, ny       int
	box          geom.Box2D
	cellDiagonal geom.Vector2
	data         []atomic.Uint64
}

// New allocates a grid with the given resolution and world box, filled with
// the constant value.
func New(nx, ny int, box geom.Box2D, value float64) *ScalarField2D {
	if nx <= 0 {
		nx = 1
	}
	if ny <= 0 {
		ny = 1
	}
	f := &ScalarField2D{
		nx:   nx,
		ny:   ny,
		box:  box,
		data: make([]atomic.Uint64, nx*ny),
	}
	size := box.Size()
	f.cellDiagonal = geom.Vector2{X: size.X / float64(nx), Y: size.Y / float64(ny)}
	if value != 0 {
		f.Fill(value)
	}
	return f
}

// NX returns the grid width in cells.
func (f *ScalarField2D) NX() int { return f.nx }

// NY returns the grid height in cells.
func (f *ScalarField2D) NY() int { return f.ny }

// Box returns the world-space box the grid covers.
func (f *ScalarField2D) Box() geom.Box2D { return f.box }

// CellDiagonal returns the (width, height) of a single cell in world units.
func (f *ScalarField2D) CellDiagonal() geom.Vector2 { return f.cellDiagonal }

// Fill sets every cell to v.
func (f *ScalarField2D) Fill(v float64) {
	bits := math.Float64bits(v)
	for i := range f.data {
		f.data[i].Store(bits)
	}
}

// ToIndex returns the row-major linear index for (i, j).
func (f *ScalarField2D) ToIndex(i, j int) int {
	return j*f.nx + i
}

// ToIndexVec is ToIndex taking a Vector2i.
func (f *ScalarField2D) ToIndexVec(q geom.Vector2i) int {
	return f.ToIndex(q.X, q.Y)
}

// Get returns the value at integer cell (i, j). No bounds wrapping is
// performed; callers are expected to have snapped (i, j) into range.
func (f *ScalarField2D) Get(i, j int) float64 {
	return math.Float64frombits(f.data[f.ToIndex(i, j)].Load())
}

// Set stores v at integer cell (i, j).
func (f *ScalarField2D) Set(i, j int, v float64) {
	f.data[f.ToIndex(i, j)].Store(math.Float64bits(v))
}

// AddAtomic adds delta to the value at (i, j) using a lock-free
// compare-and-swap loop. Safe for concurrent callers; reads racing with an
// in-flight AddAtomic may observe the pre- or post-update value but never a
// torn one.
func (f *ScalarField2D) AddAtomic(i, j int, delta float64) {
	addr := &f.data[f.ToIndex(i, j)]
	for {
		old := addr.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if addr.CompareAndSwap(old, next) {
			return
		}
	}
}

// VertexOf returns the canonical world-space position of cell (i, j): its
// lower-left corner, i.e. box.Min + (i, j) * cellDiagonal.
func (f *ScalarField2D) VertexOf(i, j int) geom.Vector2 {
	return geom.Vector2{
		X: f.box.Min.X + float64(i)*f.cellDiagonal.X,
		Y: f.box.Min.Y + float64(j)*f.cellDiagonal.Y,
	}
}

// CellOf floors a world-space point into its containing integer cell. The
// point is assumed to already lie within the field's box (callers snap
// through Box2D.Wrap first); out-of-range points are clamped to the nearest
// valid cell rather than indexing out of bounds.
func (f *ScalarField2D) CellOf(p geom.Vector2) (int, int) {
	rel := p.Sub(f.box.Min)
	i := int(math.Floor(rel.X / f.cellDiagonal.X))
	j := int(math.Floor(rel.Y / f.cellDiagonal.Y))
	if i < 0 {
		i = 0
	}
	if i >= f.nx {
		i = f.nx - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= f.ny {
		j = f.ny - 1
	}
	return i, j
}

// SampleBilinear performs a standard 4-tap bilinear sample at world point p.
func (f *ScalarField2D) SampleBilinear(p geom.Vector2) float64 {
	rel := p.Sub(f.box.Min)
	fx := rel.X / f.cellDiagonal.X
	fy := rel.Y / f.cellDiagonal.Y

	i0 := int(math.Floor(fx))
	j0 := int(math.Floor(fy))
	tx := fx - float64(i0)
	ty := fy - float64(j0)

	i0 = clampIdx(i0, f.nx)
	j0 = clampIdx(j0, f.ny)
	i1 := clampIdx(i0+1, f.nx)
	j1 := clampIdx(j0+1, f.ny)

	v00 := f.Get(i0, j0)
	v10 := f.Get(i1, j0)
	v01 := f.Get(i0, j1)
	v11 := f.Get(i1, j1)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

// Gradient returns the discrete central-difference gradient at (i, j), in
// per-cell units (not divided by cell size). One-sided differences are used
// at the grid edges; this is a self-contained grid primitive and is not
// torus-aware — callers that need toroidal neighbor access (the simulation
// layer) wrap neighbor coordinates themselves and read them through Get. Returns
// the zero vector over a flat neighborhood.
func (f *ScalarField2D) Gradient(i, j int) geom.Vector2 {
	var gx, gy float64

	switch {
	case f.nx <= 1:
		gx = 0
	case i == 0:
		gx = f.Get(1, j) - f.Get(0, j)
	case i == f.nx-1:
		gx = f.Get(i, j) - f.Get(i-1, j)
	default:
		gx = (f.Get(i+1, j) - f.Get(i-1, j)) / 2
	}

	switch {
	case f.ny <= 1:
		gy = 0
	case j == 0:
		gy = f.Get(i, 1) - f.Get(i, 0)
	case j == f.ny-1:
		gy = f.Get(i, j) - f.Get(i, j-1)
	default:
		gy = (f.Get(i, j+1) - f.Get(i, j-1)) / 2
	}

	return geom.Vector2{X: gx, Y: gy}
}

// Min returns the smallest value currently stored in the field.
func (f *ScalarField2D) Min() float64 {
	return f.reduce(math.Min, math.Inf(1))
}

// Max returns the largest value currently stored in the field.
func (f *ScalarField2D) Max() float64 {
	return f.reduce(math.Max, math.Inf(-1))
}

// Sum returns the sum of all values currently stored in the field.
func (f *ScalarField2D) Sum() float64 {
	var total float64
	for i := range f.data {
		total += math.Float64frombits(f.data[i].Load())
	}
	return total
}

func (f *ScalarField2D) reduce(fn func(a, b float64) float64, init float64) float64 {
	acc := init
	for i := range f.data {
		acc = fn(acc, math.Float64frombits(f.data[i].Load()))
	}
	return acc
}

func clampIdx(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
