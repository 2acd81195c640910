package desert

// reptate distributes short-range sand creep from (i, j) to its up-to-2
// steepest downhill sediment neighbors, scaled by bounce count (spec 4.5).
func (s *Simulation) reptate(i, j, bounce int) {
	p := s.paramsSnapshot()

	b := bounce
	if b < 0 {
		b = 0
	}
	if b > p.MaxBounce {
		b = p.MaxBounce
	}
	t := float64(b) / float64(p.MaxBounce)
	se := lerpScalarClamped(p.MatterToMove/2, p.MatterToMove, t)

	var neighbors [8]flowNeighbor
	n := s.checkSedimentFlow(i, j, p.TauSediment, &neighbors)
	if n > 2 {
		n = 2
	}
	if n == 0 {
		return
	}

	// neighbors[k].dist is the true 8-connected step distance (cellSize or
	// cellSize*sqrt2); computing it instead from world-space vertex
	// positions would misfire across a torus seam, where a wrapped
	// neighbor's raw coordinates sit a full box width away.
	effective := 0
	sei := se / float64(n)
	for k := 0; k < n; k++ {
		if neighbors[k].dist > p.ReptationRadius {
			continue
		}
		s.sediments.AddAtomic(neighbors[k].i, neighbors[k].j, sei)
		effective++
	}

	// The full se leaves (i,j) whenever at least one neighbor received a
	// share, even if a skipped out-of-radius neighbor's share went
	// nowhere: creep degrades rather than teleports (spec 4.5, 8.2).
	if effective > 0 {
		s.sediments.AddAtomic(i, j, -se)
	}
}

func lerpScalarClamped(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}
