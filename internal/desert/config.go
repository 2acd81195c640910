package desert

import "github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"

// Default tunables, taken from the original research prototype
// (original_source/Code/Source/desert{,-simulation}.cpp). Those with a
// Params field seed DefaultParams, and New falls back to some of them when
// a Config leaves them unset; the abrasion noise and wind-clip constants are
// used directly by abrade/proceduralHardness and are not part of Params.
// Only the keys listed by ParameterControls can be changed after
// construction.
const (
	defaultNX = 1024
	defaultNY = 1024

	defaultMatterToMove = 0.1

	defaultTauSediment = 0.60 // ~31 degrees
	defaultTauBedrock  = 2.5  // ~68 degrees

	defaultTauShadowMin = 0.08
	defaultTauShadowMax = 0.26

	defaultMaxBounce        = 3
	defaultAbrasionEpsilon  = 0.5
	defaultShadowRadius     = 10.0
	defaultWindStepLength   = 0.5
	defaultReptationRadius  = 2.0
	defaultWorkerCount      = 8
	defaultAbrasionChance   = 0.2
	defaultAbrasionSandMax  = 0.5
	defaultAbrasionFreq     = 0.08
	defaultAbrasionWarp     = 15.36
	defaultAbrasionNoiseFq  = 0.05
	defaultAbrasionWindClip = 2.0
	defaultWindSandGain     = 0.005
	defaultWindDeadAir      = 1e-3
	defaultWindCrosswind    = 5.0
	defaultStabilizeEvery   = 5
)

// Params holds the tunable numeric thresholds and probabilities governing
// the saltation, reptation, abrasion and stabilization operators. Params is
// copied by value into Config so multiple simulations never alias the same
// tunables.
type Params struct {
	MatterToMove float64

	TauSediment float64
	TauBedrock  float64

	TauShadowMin float64
	TauShadowMax float64
	ShadowRadius float64

	MaxBounce       int
	ReptationRadius float64

	AbrasionEpsilon float64
	AbrasionChance  float64
	AbrasionSandMax float64

	WindStepLength float64
	WindSandGain   float64
	WindDeadAir    float64
	WindCrosswind  float64

	WorkerCount    int
	StabilizeEvery int
}

// DefaultParams returns the tunables from the original research prototype.
func DefaultParams() Params {
	return Params{
		MatterToMove:    defaultMatterToMove,
		TauSediment:     defaultTauSediment,
		TauBedrock:      defaultTauBedrock,
		TauShadowMin:    defaultTauShadowMin,
		TauShadowMax:    defaultTauShadowMax,
		ShadowRadius:    defaultShadowRadius,
		MaxBounce:       defaultMaxBounce,
		ReptationRadius: defaultReptationRadius,
		AbrasionEpsilon: defaultAbrasionEpsilon,
		AbrasionChance:  defaultAbrasionChance,
		AbrasionSandMax: defaultAbrasionSandMax,
		WindStepLength:  defaultWindStepLength,
		WindSandGain:    defaultWindSandGain,
		WindDeadAir:     defaultWindDeadAir,
		WindCrosswind:   defaultWindCrosswind,
		WorkerCount:     defaultWorkerCount,
		StabilizeEvery:  defaultStabilizeEvery,
	}
}

// Config describes the construction-time parameters of a Simulation.
type Config struct {
	Box geom.Box2D
	NX  int
	NY  int

	Wind geom.Vector2

	// SandMin/SandMax bound the uniform initial sediment distribution.
	SandMin, SandMax float64

	// Seed drives the one-time deterministic sediment initialization.
	Seed int64

	AbrasionOn   bool
	VegetationOn bool

	Params Params
}

// DefaultConfig returns a 1024x1024 configuration over a unit box with a
// base wind of (1, 0).
func DefaultConfig() Config {
	return Config{
		Box:    geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: 1, Y: 1}),
		NX:     defaultNX,
		NY:     defaultNY,
		Wind:   geom.Vector2{X: 1, Y: 0},
		Seed:   0,
		Params: DefaultParams(),
	}
}
