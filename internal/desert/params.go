package desert

import "strconv"

// ParamType enumerates supported parameter value kinds, mirroring the
// teacher toolkit's calibration surface (internal/core.ParamType) so a HUD
// or CLI can introspect and edit tunables uniformly.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeBool  ParamType = "bool"
)

// Parameter describes a single tunable value exposed by the simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl describes an adjustable parameter, with optional bounds.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType
	Step  float64

	Min, Max      float64
	HasMin, HasMax bool
}

func intParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v)}
}

func floatParam(key, label string, v float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func boolParam(key, label string, v bool) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(v)}
}

// Parameters returns a snapshot of the simulation's current tunables,
// grouped the way the teacher's ecology sim groups terrain/lava/fire
// parameters (params_snapshot.go).
func (s *Simulation) Parameters() ParameterSnapshot {
	p := s.cfg.Params
	return ParameterSnapshot{Groups: []ParameterGroup{
		{
			Name: "Grid",
			Params: []Parameter{
				intParam("nx", "Grid width", s.nx),
				intParam("ny", "Grid height", s.ny),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Wind",
			Params: []Parameter{
				floatParam("wind_x", "Wind X", s.cfg.Wind.X),
				floatParam("wind_y", "Wind Y", s.cfg.Wind.Y),
				floatParam("matter_to_move", "Matter moved per lift", p.MatterToMove),
			},
		},
		{
			Name: "Repose",
			Params: []Parameter{
				floatParam("tau_sediment", "Sediment repose tangent", p.TauSediment),
				floatParam("tau_bedrock", "Bedrock repose tangent", p.TauBedrock),
			},
		},
		{
			Name: "Shadow",
			Params: []Parameter{
				floatParam("tau_shadow_min", "Shadow tangent min", p.TauShadowMin),
				floatParam("tau_shadow_max", "Shadow tangent max", p.TauShadowMax),
				floatParam("shadow_radius", "Shadow probe radius", p.ShadowRadius),
			},
		},
		{
			Name: "Abrasion",
			Params: []Parameter{
				boolParam("abrasion_on", "Abrasion enabled", s.abrasionOn.Load()),
				floatParam("abrasion_epsilon", "Abrasion epsilon", p.AbrasionEpsilon),
				floatParam("abrasion_chance", "Abrasion chance per hop", p.AbrasionChance),
			},
		},
		{
			Name: "Vegetation",
			Params: []Parameter{
				boolParam("vegetation_on", "Vegetation retention enabled", s.vegetationOn.Load()),
			},
		},
	}}
}

func int64Param(key, label string, v int64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

// ParameterControls lists the tunables that are safe to adjust after
// construction (grid resolution and seed are not, since they would
// invalidate the field buffers).
func (s *Simulation) ParameterControls() []ParameterControl {
	return []ParameterControl{
		{Key: "matter_to_move", Label: "Matter moved per lift", Type: ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "tau_sediment", Label: "Sediment repose tangent", Type: ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "tau_bedrock", Label: "Bedrock repose tangent", Type: ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "tau_shadow_min", Label: "Shadow tangent min", Type: ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "tau_shadow_max", Label: "Shadow tangent max", Type: ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "abrasion_epsilon", Label: "Abrasion epsilon", Type: ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "max_bounce", Label: "Max saltation bounces", Type: ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "abrasion_on", Label: "Abrasion enabled", Type: ParamTypeBool},
		{Key: "vegetation_on", Label: "Vegetation retention enabled", Type: ParamTypeBool},
	}
}

// SetFloatParameter updates a float tunable by key, clamping to sane
// non-negative ranges. Returns false for unknown keys.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		value = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case "matter_to_move":
		s.cfg.Params.MatterToMove = value
	case "tau_sediment":
		s.cfg.Params.TauSediment = value
	case "tau_bedrock":
		s.cfg.Params.TauBedrock = value
	case "tau_shadow_min":
		s.cfg.Params.TauShadowMin = value
	case "tau_shadow_max":
		s.cfg.Params.TauShadowMax = value
	case "abrasion_epsilon":
		s.cfg.Params.AbrasionEpsilon = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an int tunable by key. Returns false for unknown
// keys.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	if value < 1 {
		value = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case "max_bounce":
		s.cfg.Params.MaxBounce = value
	default:
		return false
	}
	return true
}
