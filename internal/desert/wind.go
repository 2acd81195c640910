package desert

import "github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"

// windAt derives the local wind vector at cell (i, j) from the global wind
// and the local sediment gradient (spec 4.2).
//
// Open question resolution: the original prototype tests dot(g, gPerp) as a
// boolean to decide whether to flip the crosswind vector. Since g and gPerp
// are orthogonal by construction that dot product is analytically zero,
// making the flip branch dead code. This implementation instead flips
// gPerp when it points against the wind (dot(wind, gPerp) < 0), which is
// the documented likely-intended predicate (spec.md section 9).
func (s *Simulation) windAt(i, j int) geom.Vector2 {
	p := s.paramsSnapshot()

	sand := s.sediments.Get(i, j)
	wind := s.baseWind().Scale(1 + p.WindSandGain*sand)

	if absF(wind.X) < p.WindDeadAir && absF(wind.Y) < p.WindDeadAir {
		return wind
	}

	// Central difference over wrapped neighbors, in per-cell units, so cells
	// on the grid border see the sand across the torus seam.
	ei, ej := s.wrappedNeighbor(i, j, 1, 0)
	wi, wj := s.wrappedNeighbor(i, j, -1, 0)
	ni, nj := s.wrappedNeighbor(i, j, 0, 1)
	si, sj := s.wrappedNeighbor(i, j, 0, -1)
	g := geom.Vector2{
		X: (s.sediments.Get(ei, ej) - s.sediments.Get(wi, wj)) / 2,
		Y: (s.sediments.Get(ni, nj) - s.sediments.Get(si, sj)) / 2,
	}
	if g.IsZero() || wind.IsZero() {
		return wind
	}

	gPerp := g.Perp()
	if wind.Dot(gPerp) < 0 {
		gPerp = gPerp.Scale(-1)
	}

	slope := geom.Clamp01(g.Length())
	return geom.Lerp(wind, gPerp.Scale(p.WindCrosswind), slope)
}

func (s *Simulation) baseWind() geom.Vector2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Wind
}

func (s *Simulation) paramsSnapshot() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Params
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
