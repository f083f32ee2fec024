package domain

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// DoF is an ordered subset of the axes X, Y and Z, e.g. "XYZ" or "ZX".
// The empty DoF means the segment is fixed in that respect.
type DoF string

const (
	DoFNone DoF = ""
	DoFX    DoF = "X"
	DoFY    DoF = "Y"
	DoFZ    DoF = "Z"
	DoFXY   DoF = "XY"
	DoFXZ   DoF = "XZ"
	DoFYZ   DoF = "YZ"
	DoFXYZ  DoF = "XYZ"
)

// Validate checks that every axis appears at most once.
func (d DoF) Validate() error {
	seen := make(map[rune]bool, 3)
	for _, c := range string(d) {
		if c != 'X' && c != 'Y' && c != 'Z' {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidDoF, string(d), c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %q repeats %q", ErrInvalidDoF, string(d), c)
		}
		seen[c] = true
	}
	return nil
}

// Axes lists the declared axes in order.
func (d DoF) Axes() []AxisName {
	axes := make([]AxisName, 0, len(d))
	for _, c := range string(d) {
		axes = append(axes, AxisName(c))
	}
	return axes
}

// ParseDoF normalises a user-provided DoF string ("xyz" -> "XYZ").
func ParseDoF(s string) (DoF, error) {
	d := DoF(strings.ToUpper(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Marker is a tracked landmark attached to a segment. Its position is the trial
// position of its own label.
type Marker struct {
	Label        string
	IsTechnical  bool
	IsAnatomical bool
}

// Reference returns the implicit reference of the marker.
func (m Marker) Reference() SpatialReference {
	return MarkerRef(m.Label)
}

// Mesh is an ordered list of points drawn for a segment. IsLocal points are already
// expressed in the segment frame; the others are global and get re-expressed.
type Mesh struct {
	Points  []SpatialReference
	IsLocal bool
}

// InertiaParameters are passed through to the real model without interpretation.
type InertiaParameters struct {
	Mass         float64    `json:"mass" yaml:"mass"`
	CenterOfMass r3.Vec     `json:"center_of_mass" yaml:"center_of_mass"`
	Inertia      [3]float64 `json:"inertia" yaml:"inertia"`
}

// Segment is a template node. Most of its geometry is deferred until realization.
type Segment struct {
	Name         string
	ParentName   string
	SCS          *SegmentCoordinateSystem
	Translations DoF
	Rotations    DoF
	Markers      []Marker
	Mesh         *Mesh
	Inertia      *InertiaParameters
	// InertiaRole keys the segment into an external inertia provider.
	InertiaRole string
}

// IsRoot reports whether the segment has no parent.
func (s *Segment) IsRoot() bool { return s.ParentName == "" }

// AddMarker attaches a marker to the segment.
func (s *Segment) AddMarker(m Marker) {
	s.Markers = append(s.Markers, m)
}

// Validate checks everything about the segment that does not involve other segments or a trial.
func (s *Segment) Validate() error {
	wrap := func(err error) error {
		return &TemplateError{Segment: s.Name, Err: err}
	}
	if err := s.Translations.Validate(); err != nil {
		return wrap(fmt.Errorf("translations: %w", err))
	}
	if err := s.Rotations.Validate(); err != nil {
		return wrap(fmt.Errorf("rotations: %w", err))
	}
	if s.SCS != nil {
		if err := s.SCS.Validate(); err != nil {
			return wrap(err)
		}
	}
	for _, m := range s.Markers {
		if m.Label == "" {
			return wrap(fmt.Errorf("%w: marker without label", ErrInvalidReference))
		}
	}
	if s.Mesh != nil {
		for i, p := range s.Mesh.Points {
			if err := p.Validate(); err != nil {
				return wrap(fmt.Errorf("mesh point %d: %w", i, err))
			}
		}
	}
	return nil
}

// clone copies the slices so the template owns its data.
func (s Segment) clone() Segment {
	out := s
	out.Markers = append([]Marker(nil), s.Markers...)
	if s.SCS != nil {
		scs := *s.SCS
		out.SCS = &scs
	}
	if s.Mesh != nil {
		mesh := Mesh{Points: append([]SpatialReference(nil), s.Mesh.Points...), IsLocal: s.Mesh.IsLocal}
		out.Mesh = &mesh
	}
	if s.Inertia != nil {
		in := *s.Inertia
		out.Inertia = &in
	}
	return out
}
