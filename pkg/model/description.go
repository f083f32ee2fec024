package model

import (
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a serialisable 3D position.
type Point [3]float64

// PointOf converts a vector.
func PointOf(v r3.Vec) Point { return Point{v.X, v.Y, v.Z} }

// Vec converts back to a vector.
func (p Point) Vec() r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

// Description is the serialised form of a RealModel.
type Description struct {
	Name     string               `json:"name" yaml:"name"`
	Segments []SegmentDescription `json:"segments" yaml:"segments"`
}

// SegmentDescription is one segment of a Description. Transform is parent-relative.
type SegmentDescription struct {
	Name         string                    `json:"name" yaml:"name"`
	Parent       string                    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Translations string                    `json:"translations,omitempty" yaml:"translations,omitempty"`
	Rotations    string                    `json:"rotations,omitempty" yaml:"rotations,omitempty"`
	Transform    geometry.Transform        `json:"transform" yaml:"transform"`
	Markers      []MarkerDescription       `json:"markers,omitempty" yaml:"markers,omitempty"`
	Mesh         []Point                   `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Inertia      *domain.InertiaParameters `json:"inertia,omitempty" yaml:"inertia,omitempty"`
}

// MarkerDescription is a marker with its owning segment and local position.
type MarkerDescription struct {
	Name       string `json:"name" yaml:"name"`
	Segment    string `json:"segment" yaml:"segment"`
	Position   Point  `json:"position" yaml:"position"`
	Technical  bool   `json:"technical" yaml:"technical"`
	Anatomical bool   `json:"anatomical" yaml:"anatomical"`
}

// Export serialises the model, parents before children.
func (m *RealModel) Export() Description {
	d := Description{Name: m.name, Segments: make([]SegmentDescription, 0, len(m.segments))}
	for _, s := range m.segments {
		sd := SegmentDescription{
			Name:         s.Name,
			Parent:       s.ParentName,
			Translations: string(s.Translations),
			Rotations:    string(s.Rotations),
			Transform:    s.Local,
		}
		for _, mk := range s.Markers {
			sd.Markers = append(sd.Markers, MarkerDescription{
				Name:       mk.Label,
				Segment:    s.Name,
				Position:   PointOf(mk.Local),
				Technical:  mk.IsTechnical,
				Anatomical: mk.IsAnatomical,
			})
		}
		for _, v := range s.Mesh {
			sd.Mesh = append(sd.Mesh, PointOf(v))
		}
		if s.Inertia != nil {
			in := *s.Inertia
			sd.Inertia = &in
		}
		d.Segments = append(d.Segments, sd)
	}
	return d
}

// FromDescription rebuilds a model from its serialised form.
func FromDescription(d Description) (*RealModel, error) {
	segments := make([]RealSegment, 0, len(d.Segments))
	for _, sd := range d.Segments {
		s := RealSegment{
			Name:         sd.Name,
			ParentName:   sd.Parent,
			Local:        sd.Transform,
			Translations: domain.DoF(sd.Translations),
			Rotations:    domain.DoF(sd.Rotations),
		}
		if err := s.Translations.Validate(); err != nil {
			return nil, fmt.Errorf("segment %q: %w", sd.Name, err)
		}
		if err := s.Rotations.Validate(); err != nil {
			return nil, fmt.Errorf("segment %q: %w", sd.Name, err)
		}
		for _, md := range sd.Markers {
			s.Markers = append(s.Markers, RealMarker{
				Label:        md.Name,
				Local:        md.Position.Vec(),
				IsTechnical:  md.Technical,
				IsAnatomical: md.Anatomical,
			})
		}
		for _, p := range sd.Mesh {
			s.Mesh = append(s.Mesh, p.Vec())
		}
		if sd.Inertia != nil {
			in := *sd.Inertia
			s.Inertia = &in
		}
		segments = append(segments, s)
	}
	return New(d.Name, segments)
}

// Clone returns a deep copy.
func (d Description) Clone() Description {
	out := Description{Name: d.Name}
	if d.Segments == nil {
		return out
	}
	out.Segments = make([]SegmentDescription, len(d.Segments))
	for i, s := range d.Segments {
		c := s
		c.Markers = append([]MarkerDescription(nil), s.Markers...)
		c.Mesh = append([]Point(nil), s.Mesh...)
		if s.Inertia != nil {
			in := *s.Inertia
			c.Inertia = &in
		}
		out.Segments[i] = c
	}
	return out
}
