package desert

import "errors"

// ErrInvalidGeometry is returned by New when the requested grid does not
// produce square cells.
var ErrInvalidGeometry = errors.New("desert: cells are not square")

// ErrDimensionMismatch is returned by the Set* layer overrides when the
// supplied field's resolution does not match the simulation's grid.
var ErrDimensionMismatch = errors.New("desert: field resolution does not match simulation grid")
