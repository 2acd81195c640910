package scenario

import "testing"

func TestLoadDefaultsPopulatesGrid(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Grid.NX <= 0 || s.Grid.NY <= 0 {
		t.Fatalf("Grid = %+v, want positive dimensions", s.Grid)
	}
	if s.Params.MaxBounce <= 0 {
		t.Fatalf("Params.MaxBounce = %d, want positive", s.Params.MaxBounce)
	}
}

func TestToConfigProducesSquareCells(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := s.ToConfig()
	size := cfg.Box.Size()
	cellW := size.X / float64(cfg.NX)
	cellH := size.Y / float64(cfg.NY)
	if cellW != cellH {
		t.Fatalf("cell size mismatch: %v x %v", cellW, cellH)
	}
}

func TestToConfigCarriesParams(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Params.MaxBounce = 7
	cfg := s.ToConfig()
	if cfg.Params.MaxBounce != 7 {
		t.Fatalf("Params.MaxBounce = %d, want 7", cfg.Params.MaxBounce)
	}
}
