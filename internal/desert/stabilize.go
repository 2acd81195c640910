package desert

// flowNeighbor is one candidate downhill transfer target: its grid cell,
// the tangent slope toward it, and the world-space distance used to derive
// that slope (needed again when computing the transfer amount).
type flowNeighbor struct {
	i, j  int
	slope float64
	dist  float64
}

// checkFlow computes, for each of the 8 neighbors of (i, j), the tangent
// t_k = (elevation(i,j) - elevation(neighbor)) / d_k, keeps those steeper
// than tau by more than slopeEpsilon, and returns them sorted
// steepest-first. elevation is
// total height H for sediment stabilization and bedrock-only elevation for
// bedrock stabilization (spec.md section 4.7's "mirrors the sediment
// procedure" is read as mirroring on the bedrock layer's own elevation, so
// a transient sand cover cannot mask a bedrock slope that needs to
// relax — see DESIGN.md).
func (s *Simulation) checkFlow(elevation func(i, j int) float64, i, j int, tau float64, out *[8]flowNeighbor) int {
	here := elevation(i, j)
	n := 0
	for k := 0; k < 8; k++ {
		ni, nj := s.wrappedNeighbor(i, j, next8[k].X, next8[k].Y)
		d := neighborDistance(k, s.cellSize)
		t := (here - elevation(ni, nj)) / d
		if t > tau+slopeEpsilon {
			out[n] = flowNeighbor{i: ni, j: nj, slope: t, dist: d}
			n++
		}
	}
	sortBySlopeDescending(out, n)
	return n
}

func (s *Simulation) checkSedimentFlow(i, j int, tau float64, out *[8]flowNeighbor) int {
	return s.checkFlow(s.Height, i, j, tau, out)
}

func (s *Simulation) checkBedrockFlow(i, j int, tau float64, out *[8]flowNeighbor) int {
	return s.checkFlow(s.bedrock.Get, i, j, tau, out)
}

func neighborDistance(k int, cellSize float64) float64 {
	o := next8[k]
	if o.X != 0 && o.Y != 0 {
		return cellSize * sqrt2
	}
	return cellSize
}

const sqrt2 = 1.4142135623730951

// slopeEpsilon is the margin by which a tangent must exceed tau to count as
// steeper than repose. A transfer leaves its pair at tau up to rounding
// (~1e-16); without the margin that residue keeps the relaxation loops
// making transfers too small to change any cell, and they never finish.
const slopeEpsilon = 1e-9

// sortBySlopeDescending performs a small insertion sort over the first n
// entries; n is at most 8 so this is cheaper and clearer than sort.Slice.
func sortBySlopeDescending(neighbors *[8]flowNeighbor, n int) {
	for i := 1; i < n; i++ {
		cur := neighbors[i]
		j := i - 1
		for j >= 0 && neighbors[j].slope < cur.slope {
			neighbors[j+1] = neighbors[j]
			j--
		}
		neighbors[j+1] = cur
	}
}

// stabilizeSediment moves sand from (i, j) to its steepest neighbor beyond
// the sediment repose angle, enough to bring that pair to the repose slope,
// then continues from that neighbor. It stops at the first cell on this
// downhill path that has no such neighbor or an empty column (spec 4.7).
// Earlier cells on the path, (i, j) included, are not revisited and may
// still exceed repose afterwards.
func (s *Simulation) stabilizeSediment(i, j int) {
	tau := s.paramsSnapshot().TauSediment
	var neighbors [8]flowNeighbor

	for s.sediments.Get(i, j) > 0 {
		n := s.checkSedimentFlow(i, j, tau, &neighbors)
		if n == 0 {
			return
		}
		best := neighbors[0]
		delta := best.dist * (best.slope - tau) / 2
		if delta > s.sediments.Get(i, j) {
			delta = s.sediments.Get(i, j)
		}
		if delta <= 0 {
			return
		}
		s.sediments.AddAtomic(i, j, -delta)
		s.sediments.AddAtomic(best.i, best.j, delta)
		i, j = best.i, best.j
	}
}

// stabilizeBedrock mirrors stabilizeSediment for the bedrock layer and the
// bedrock repose tangent. Returns whether any transfer occurred.
func (s *Simulation) stabilizeBedrock(i, j int) bool {
	tau := s.paramsSnapshot().TauBedrock
	var neighbors [8]flowNeighbor

	transferred := false
	for {
		n := s.checkBedrockFlow(i, j, tau, &neighbors)
		if n == 0 {
			return transferred
		}
		best := neighbors[0]
		delta := best.dist * (best.slope - tau) / 2
		if delta <= 0 {
			return transferred
		}
		s.bedrock.AddAtomic(i, j, -delta)
		s.bedrock.AddAtomic(best.i, best.j, delta)
		transferred = true
		i, j = best.i, best.j
	}
}

// stabilizeBedrockAll scans the grid in row-major order until a full sweep
// produces no transfer (a fixed point), per spec 4.7/4.8.
func (s *Simulation) stabilizeBedrockAll() {
	for {
		changed := false
		for j := 0; j < s.ny; j++ {
			for i := 0; i < s.nx; i++ {
				if s.stabilizeBedrock(i, j) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
