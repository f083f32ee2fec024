package dsl

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// SegmentBuilder provides a fluent API for configuring a segment.
type SegmentBuilder struct {
	segment domain.Segment
	builder *Builder
}

// Parent attaches the segment to another one.
func (s *SegmentBuilder) Parent(name string) *SegmentBuilder {
	s.segment.ParentName = name
	return s
}

// Translations sets the translational degrees of freedom, e.g. "XYZ".
func (s *SegmentBuilder) Translations(dof domain.DoF) *SegmentBuilder {
	s.segment.Translations = dof
	return s
}

// Rotations sets the rotational degrees of freedom.
func (s *SegmentBuilder) Rotations(dof domain.DoF) *SegmentBuilder {
	s.segment.Rotations = dof
	return s
}

// CoordinateSystem defines the segment frame.
func (s *SegmentBuilder) CoordinateSystem(origin domain.SpatialReference, first, second domain.Axis, keep domain.AxisName) *SegmentBuilder {
	s.segment.SCS = domain.NewSCS(origin, first, second, keep)
	return s
}

// Marker attaches an anatomical and technical marker, the common case.
func (s *SegmentBuilder) Marker(label string) *SegmentBuilder {
	s.segment.AddMarker(domain.Marker{Label: label, IsTechnical: true, IsAnatomical: true})
	return s
}

// TechnicalMarker attaches a marker used for tracking only.
func (s *SegmentBuilder) TechnicalMarker(label string) *SegmentBuilder {
	s.segment.AddMarker(domain.Marker{Label: label, IsTechnical: true})
	return s
}

// AnatomicalMarker attaches a marker used for frame definition only.
func (s *SegmentBuilder) AnatomicalMarker(label string) *SegmentBuilder {
	s.segment.AddMarker(domain.Marker{Label: label, IsAnatomical: true})
	return s
}

// Markers attaches several default markers.
func (s *SegmentBuilder) Markers(labels ...string) *SegmentBuilder {
	for _, l := range labels {
		s.Marker(l)
	}
	return s
}

// Mesh sets global mesh points, re-expressed in the segment frame on realization.
func (s *SegmentBuilder) Mesh(points ...domain.SpatialReference) *SegmentBuilder {
	s.segment.Mesh = &domain.Mesh{Points: points}
	return s
}

// LocalMesh sets mesh points already expressed in the segment frame.
func (s *SegmentBuilder) LocalMesh(points ...r3.Vec) *SegmentBuilder {
	refs := make([]domain.SpatialReference, len(points))
	for i, p := range points {
		refs[i] = domain.Fixed(p)
	}
	s.segment.Mesh = &domain.Mesh{Points: refs, IsLocal: true}
	return s
}

// Inertia sets explicit inertial parameters.
func (s *SegmentBuilder) Inertia(p domain.InertiaParameters) *SegmentBuilder {
	s.segment.Inertia = &p
	return s
}

// InertiaRole keys the segment into an inertia provider.
func (s *SegmentBuilder) InertiaRole(role string) *SegmentBuilder {
	s.segment.InertiaRole = role
	return s
}

// Segment continues with another segment of the same builder.
func (s *SegmentBuilder) Segment(name string) *SegmentBuilder {
	return s.builder.Segment(name)
}

// Axis is a shorthand for domain.NewAxis.
func Axis(name domain.AxisName, start, end domain.SpatialReference) domain.Axis {
	return domain.NewAxis(name, start, end)
}

// Between is an axis running from one marker to another.
func Between(name domain.AxisName, from, to string) domain.Axis {
	return domain.NewAxis(name, domain.MarkerRef(from), domain.MarkerRef(to))
}
