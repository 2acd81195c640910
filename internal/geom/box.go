package geom

// Box2D is an axis-aligned world-space bounding box.
type Box2D struct {
	Min, Max Vector2
}

// NewBox2D returns a box spanning [min, max].
func NewBox2D(min, max Vector2) Box2D {
	return Box2D{Min: min, Max: max}
}

// Size returns the (width, height) of the box.
func (b Box2D) Size() Vector2 {
	return Vector2{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y}
}

// Wrap maps p into [Min, Max) on both axes, treating the box as a flat
// torus. Idempotent: Wrap(Wrap(p)) == Wrap(p).
func (b Box2D) Wrap(p Vector2) Vector2 {
	size := b.Size()
	return Vector2{
		X: wrapAxis(p.X, b.Min.X, size.X),
		Y: wrapAxis(p.Y, b.Min.Y, size.Y),
	}
}

func wrapAxis(v, min, size float64) float64 {
	if size <= 0 {
		return min
	}
	rel := v - min
	rel -= size * floorDiv(rel, size)
	if rel < 0 {
		rel += size
	}
	if rel >= size {
		rel -= size
	}
	return min + rel
}

func floorDiv(a, b float64) float64 {
	q := a / b
	if q < 0 {
		// math.Floor avoided here to keep this file dependency-free; truncation
		// toward negative infinity is all that's needed.
		iq := int64(q)
		if float64(iq) != q {
			iq--
		}
		return float64(iq)
	}
	return float64(int64(q))
}
