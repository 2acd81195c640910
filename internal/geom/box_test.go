package geom

import "testing"

func TestWrapIdempotent(t *testing.T) {
	b := NewBox2D(Vector2{}, Vector2{X: 10, Y: 10})
	p := Vector2{X: 23.5, Y: -4.25}
	once := b.Wrap(p)
	twice := b.Wrap(once)
	if once != twice {
		t.Fatalf("Wrap not idempotent: once=%v twice=%v", once, twice)
	}
	if once.X < b.Min.X || once.X >= b.Max.X || once.Y < b.Min.Y || once.Y >= b.Max.Y {
		t.Fatalf("Wrap(%v) = %v escaped box %v", p, once, b)
	}
}

func TestWrapInRangePassesThrough(t *testing.T) {
	b := NewBox2D(Vector2{}, Vector2{X: 10, Y: 10})
	p := Vector2{X: 3, Y: 7}
	if got := b.Wrap(p); got != p {
		t.Fatalf("Wrap(%v) = %v, want unchanged", p, got)
	}
}

func TestWrapNegativeOffsetBox(t *testing.T) {
	b := NewBox2D(Vector2{X: -5, Y: -5}, Vector2{X: 5, Y: 5})
	got := b.Wrap(Vector2{X: 6, Y: -6})
	if got.X != -4 || got.Y != 4 {
		t.Fatalf("Wrap = %v, want (-4, 4)", got)
	}
}
