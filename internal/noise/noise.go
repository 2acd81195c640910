// Package noise provides the coherent-noise collaborator the abrasion
// operator falls back to when no explicit bedrock weakness field is
// supplied (spec: "noise: Vec2 -> [-1,1] with C1 continuity").
package noise

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

// Source is a deterministic 2D coherent-noise function returning values in
// [-1, 1]. Any C1-continuous gradient noise satisfies the contract; the
// abrasion operator only relies on determinism and continuity, not on the
// specific noise family.
type Source interface {
	Eval2(p geom.Vector2) float64
}

// OpenSimplex adapts github.com/ojrac/opensimplex-go to the Source
// interface.
type OpenSimplex struct {
	n opensimplex.Noise
}

// New returns an OpenSimplex noise source seeded deterministically.
func New(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.New(seed)}
}

// Eval2 returns the noise value at p, in [-1, 1].
func (o *OpenSimplex) Eval2(p geom.Vector2) float64 {
	return o.n.Eval2(p.X, p.Y)
}
