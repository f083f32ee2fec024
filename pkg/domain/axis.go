package domain

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// AxisName labels one of the three orthogonal frame axes.
type AxisName string

const (
	AxisX AxisName = "X"
	AxisY AxisName = "Y"
	AxisZ AxisName = "Z"
)

// Valid reports whether n is X, Y or Z.
func (n AxisName) Valid() bool {
	return n == AxisX || n == AxisY || n == AxisZ
}

// Index returns 0, 1 or 2 for X, Y or Z, and -1 otherwise.
func (n AxisName) Index() int {
	switch n {
	case AxisX:
		return 0
	case AxisY:
		return 1
	case AxisZ:
		return 2
	}
	return -1
}

// Unit returns the global unit vector along n.
func (n AxisName) Unit() r3.Vec {
	switch n {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisZ:
		return r3.Vec{Z: 1}
	}
	return r3.Vec{}
}

// ParseAxisName accepts "x", "X", "y", ... .
func ParseAxisName(s string) (AxisName, error) {
	n := AxisName(s)
	if len(s) == 1 && s[0] >= 'x' && s[0] <= 'z' {
		n = AxisName(s[0] - 'a' + 'A')
	}
	if !n.Valid() {
		return "", fmt.Errorf("%w: axis %q", ErrInvalidReference, s)
	}
	return n, nil
}

// Axis is a named direction running from Start to End.
type Axis struct {
	Name  AxisName
	Start SpatialReference
	End   SpatialReference
}

// NewAxis builds an axis from two references.
func NewAxis(name AxisName, start, end SpatialReference) Axis {
	return Axis{Name: name, Start: start, End: end}
}

// GlobalAxis is the unit axis of the global frame with the same name.
func GlobalAxis(name AxisName) Axis {
	return Axis{Name: name, Start: Fixed(r3.Vec{}), End: Fixed(name.Unit())}
}

// Vector resolves the raw (unnormalized) direction end - start.
func (a Axis) Vector(trial Trial) (r3.Vec, error) {
	start, err := a.Start.Resolve(trial)
	if err != nil {
		return r3.Vec{}, err
	}
	end, err := a.End.Resolve(trial)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Sub(end, start), nil
}

// SegmentCoordinateSystem is the deferred definition of a segment frame.
// AxisToKeep names the axis reproduced exactly; the other one is recomputed.
type SegmentCoordinateSystem struct {
	Origin     SpatialReference
	FirstAxis  Axis
	SecondAxis Axis
	AxisToKeep AxisName
}

// NewSCS builds a segment coordinate system.
func NewSCS(origin SpatialReference, first, second Axis, keep AxisName) *SegmentCoordinateSystem {
	return &SegmentCoordinateSystem{Origin: origin, FirstAxis: first, SecondAxis: second, AxisToKeep: keep}
}

// Validate checks the authoring invariants of the definition.
func (s *SegmentCoordinateSystem) Validate() error {
	if !s.FirstAxis.Name.Valid() || !s.SecondAxis.Name.Valid() {
		return fmt.Errorf("%w: axis names must be X, Y or Z (got %q, %q)", ErrInvalidReference, s.FirstAxis.Name, s.SecondAxis.Name)
	}
	if s.FirstAxis.Name == s.SecondAxis.Name {
		return fmt.Errorf("%w: both axes are named %s", ErrInvalidReference, s.FirstAxis.Name)
	}
	if s.AxisToKeep != s.FirstAxis.Name && s.AxisToKeep != s.SecondAxis.Name {
		return fmt.Errorf("%w: %q not in {%s, %s}", ErrInvalidAxisToKeep, s.AxisToKeep, s.FirstAxis.Name, s.SecondAxis.Name)
	}
	refs := []struct {
		what string
		ref  SpatialReference
	}{
		{"origin", s.Origin},
		{"first axis start", s.FirstAxis.Start},
		{"first axis end", s.FirstAxis.End},
		{"second axis start", s.SecondAxis.Start},
		{"second axis end", s.SecondAxis.End},
	}
	for _, r := range refs {
		if err := r.ref.Validate(); err != nil {
			return fmt.Errorf("%s: %w", r.what, err)
		}
	}
	return nil
}
