// Package scenario loads a desertscape run definition from YAML, merging an
// optional user file onto the embedded defaults.yaml the way pthm-soup's
// config package merges run configuration onto its embedded defaults.
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/desert"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scenario is the YAML-serializable description of a simulation run: grid
// geometry, wind, initial sediment range, and the tunable Params.
type Scenario struct {
	Grid struct {
		NX       int     `yaml:"nx"`
		NY       int     `yaml:"ny"`
		CellSize float64 `yaml:"cell_size"`
	} `yaml:"grid"`

	Wind struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"wind"`

	Sand struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	} `yaml:"sand"`

	Seed int64 `yaml:"seed"`

	AbrasionOn   bool `yaml:"abrasion_on"`
	VegetationOn bool `yaml:"vegetation_on"`

	Params struct {
		MatterToMove    float64 `yaml:"matter_to_move"`
		TauSediment     float64 `yaml:"tau_sediment"`
		TauBedrock      float64 `yaml:"tau_bedrock"`
		TauShadowMin    float64 `yaml:"tau_shadow_min"`
		TauShadowMax    float64 `yaml:"tau_shadow_max"`
		ShadowRadius    float64 `yaml:"shadow_radius"`
		MaxBounce       int     `yaml:"max_bounce"`
		ReptationRadius float64 `yaml:"reptation_radius"`
		AbrasionEpsilon float64 `yaml:"abrasion_epsilon"`
		AbrasionChance  float64 `yaml:"abrasion_chance"`
		AbrasionSandMax float64 `yaml:"abrasion_sand_max"`
		WindStepLength  float64 `yaml:"wind_step_length"`
		WindSandGain    float64 `yaml:"wind_sand_gain"`
		WindDeadAir     float64 `yaml:"wind_dead_air"`
		WindCrosswind   float64 `yaml:"wind_crosswind"`
		WorkerCount     int     `yaml:"worker_count"`
		StabilizeEvery  int     `yaml:"stabilize_every"`
	} `yaml:"params"`
}

// Load reads a scenario from path, with fields absent from the file falling
// back to the embedded defaults. An empty path returns the defaults alone.
func Load(path string) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(defaultsYAML, s); err != nil {
		return nil, fmt.Errorf("parsing embedded scenario defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading scenario file: %w", err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing scenario file: %w", err)
		}
	}

	return s, nil
}

// WriteYAML saves the scenario to path, for capturing the effective
// configuration of a run alongside its telemetry.
func (s *Scenario) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	return nil
}

// ToConfig converts the scenario into a desert.Config ready for desert.New.
func (s *Scenario) ToConfig() desert.Config {
	nx, ny := s.Grid.NX, s.Grid.NY
	cell := s.Grid.CellSize
	if cell <= 0 {
		cell = 1
	}

	cfg := desert.Config{
		Box:  geom.NewBox2D(geom.Vector2{}, geom.Vector2{X: float64(nx) * cell, Y: float64(ny) * cell}),
		NX:   nx,
		NY:   ny,
		Wind: geom.Vector2{X: s.Wind.X, Y: s.Wind.Y},

		SandMin: s.Sand.Min,
		SandMax: s.Sand.Max,
		Seed:    s.Seed,

		AbrasionOn:   s.AbrasionOn,
		VegetationOn: s.VegetationOn,

		Params: desert.Params{
			MatterToMove:    s.Params.MatterToMove,
			TauSediment:     s.Params.TauSediment,
			TauBedrock:      s.Params.TauBedrock,
			TauShadowMin:    s.Params.TauShadowMin,
			TauShadowMax:    s.Params.TauShadowMax,
			ShadowRadius:    s.Params.ShadowRadius,
			MaxBounce:       s.Params.MaxBounce,
			ReptationRadius: s.Params.ReptationRadius,
			AbrasionEpsilon: s.Params.AbrasionEpsilon,
			AbrasionChance:  s.Params.AbrasionChance,
			AbrasionSandMax: s.Params.AbrasionSandMax,
			WindStepLength:  s.Params.WindStepLength,
			WindSandGain:    s.Params.WindSandGain,
			WindDeadAir:     s.Params.WindDeadAir,
			WindCrosswind:   s.Params.WindCrosswind,
			WorkerCount:     s.Params.WorkerCount,
			StabilizeEvery:  s.Params.StabilizeEvery,
		},
	}
	return cfg
}
