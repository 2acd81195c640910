package desert

// saltationEvent performs one stochastic lift-hop-deposit event: the unit
// of work dispatched nx*ny times per Step (spec 4.4).
func (s *Simulation) saltationEvent() {
	p := s.paramsSnapshot()

	i0 := s.rng.IntN(s.nx)
	j0 := s.rng.IntN(s.ny)

	if s.sediments.Get(i0, j0) <= 0 {
		return
	}

	wind0 := s.windAt(i0, j0)
	if s.rng.Float64() < s.shadow(i0, j0, wind0) {
		s.stabilizeSediment(i0, j0)
		return
	}

	vegetationOn := s.vegetationOn.Load()
	sourceVeg := 0.0
	if vegetationOn {
		sourceVeg = s.vegetation.Get(i0, j0)
		if s.rng.Float64() < sourceVeg {
			s.stabilizeSediment(i0, j0)
			return
		}
	}

	s.sediments.AddAtomic(i0, j0, -p.MatterToMove)

	destI, destJ := i0, j0
	pos := s.sediments.VertexOf(destI, destJ)
	bounce := 0
	abrasionOn := s.abrasionOn.Load()

	for bounce < p.MaxBounce {
		wind := s.windAt(destI, destJ)
		pos = pos.Add(wind)
		pos = s.snapWorld(pos)
		destI, destJ = s.sediments.CellOf(pos)

		if abrasionOn && s.rng.Float64() < p.AbrasionChance && s.sediments.Get(destI, destJ) < p.AbrasionSandMax {
			s.abrade(destI, destJ, wind)
		}

		deposit := s.rng.Float64()
		destVeg := 0.0
		if vegetationOn {
			destVeg = s.vegetation.Get(destI, destJ)
		}
		sand := s.sediments.Get(destI, destJ)

		deposited := false
		switch {
		case deposit < s.shadow(destI, destJ, wind):
			deposited = true
		case sand > 0 && deposit < 0.6+0.4*destVeg:
			deposited = true
		case sand <= 0 && deposit < 0.4+0.6*destVeg:
			deposited = true
		}

		if deposited {
			s.sediments.AddAtomic(destI, destJ, p.MatterToMove)
			break
		}

		bounce++
		if s.rng.Float64() < 1-sourceVeg {
			s.reptate(destI, destJ, bounce)
		}
	}

	// A grain that exhausts MAX_BOUNCE hops without ever passing a
	// deposition test is lost here, not forced to land (spec 9): the loop
	// above simply falls through with nothing deposited at destI/destJ.
	if s.rng.Float64() < 1-sourceVeg {
		s.reptate(destI, destJ, bounce)
	}

	s.stabilizeSediment(i0, j0)
	if destI != i0 || destJ != j0 {
		s.stabilizeSediment(destI, destJ)
	}
}
