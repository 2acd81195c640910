package desert

import "github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"

// shadow returns the wind-shadow occlusion factor in [0, 1] upwind of cell
// (i, j), used as a deposition/retention probability (spec 4.3).
func (s *Simulation) shadow(i, j int, wind geom.Vector2) float64 {
	if wind.Length() < s.paramsSnapshot().WindDeadAir {
		return 0
	}
	p := s.paramsSnapshot()

	origin := s.sediments.VertexOf(i, j)
	step := wind.Normalize().Scale(p.WindStepLength)
	hOrigin := s.HeightAt(origin)

	probe := origin
	result := 0.0
	for {
		probe = probe.Sub(step)
		if probe == origin {
			break
		}
		snapped := s.snapWorld(probe)

		d := probe.Sub(origin).Length()
		if d > p.ShadowRadius {
			break
		}

		hProbe := s.HeightAt(snapped)
		t := (hProbe - hOrigin) / d
		sv := geom.Smoothstep(t, p.TauShadowMin, p.TauShadowMax)
		if sv > result {
			result = sv
		}
	}
	return result
}
