package desert

import (
	"math"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

// abrade erodes bedrock at (i, j) where sand cover is sparse and bedrock is
// weak (spec 4.6). Eroded material is discarded, not conserved into sand.
func (s *Simulation) abrade(i, j int, wind geom.Vector2) {
	p := s.paramsSnapshot()

	v := 0.0
	if s.vegetationOn.Load() {
		v = s.vegetation.Get(i, j)
	}

	h := s.Hardness(i, j)
	w := geom.Clamp(wind.Length(), 0, defaultAbrasionWindClip)

	si := p.AbrasionEpsilon * (1 - v) * (1 - h) * w
	if si > 0 {
		s.bedrock.AddAtomic(i, j, -si)
	}
}

// proceduralHardness derives bedrock weakness from 2D coherent noise when no
// explicit hardness field has been supplied (spec 4.6, 4.9).
func (s *Simulation) proceduralHardness(i, j int) float64 {
	p := s.sediments.VertexOf(i, j)
	n := s.noise.Eval2(geom.Vector2{X: p.X * defaultAbrasionNoiseFq, Y: p.Y * defaultAbrasionNoiseFq})
	return (math.Sin(p.Y*defaultAbrasionFreq+defaultAbrasionWarp*n) + 1) / 2
}
