package model

import (
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// RealModel is an immutable, single-rooted tree of realized segments.
type RealModel struct {
	name     string
	segments []RealSegment
	index    map[string]int
	globals  []geometry.Transform
	children map[string][]string
}

// New assembles a model from segments listed parents before children.
// The first segment must be the root.
func New(name string, segments []RealSegment) (*RealModel, error) {
	if len(segments) == 0 {
		return nil, &domain.TemplateError{Err: domain.ErrNoRoot, Detail: "model has no segments"}
	}
	m := &RealModel{
		name:     name,
		segments: make([]RealSegment, len(segments)),
		index:    make(map[string]int, len(segments)),
		globals:  make([]geometry.Transform, len(segments)),
		children: make(map[string][]string),
	}
	for i, s := range segments {
		if _, dup := m.index[s.Name]; dup {
			return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrDuplicateSegment}
		}
		if i == 0 {
			if !s.IsRoot() {
				return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrNoRoot, Detail: "first segment has a parent"}
			}
			m.globals[i] = s.Local
		} else {
			if s.IsRoot() {
				return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrMultipleRoots}
			}
			p, ok := m.index[s.ParentName]
			if !ok {
				return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrMissingParent, Detail: fmt.Sprintf("parent %q not listed before it", s.ParentName)}
			}
			m.globals[i] = m.globals[p].Mul(s.Local)
			m.children[s.ParentName] = append(m.children[s.ParentName], s.Name)
		}
		m.segments[i] = s.clone()
		m.index[s.Name] = i
	}
	return m, nil
}

// Name returns the model name.
func (m *RealModel) Name() string { return m.name }

// Len returns the number of segments.
func (m *RealModel) Len() int { return len(m.segments) }

// Root returns the name of the root segment.
func (m *RealModel) Root() string { return m.segments[0].Name }

// Names lists segments parents before children.
func (m *RealModel) Names() []string {
	out := make([]string, len(m.segments))
	for i, s := range m.segments {
		out[i] = s.Name
	}
	return out
}

// Children lists the direct children of a segment.
func (m *RealModel) Children(name string) []string {
	return append([]string(nil), m.children[name]...)
}

// Segments returns copies of all segments, parents before children.
func (m *RealModel) Segments() []RealSegment {
	out := make([]RealSegment, len(m.segments))
	for i, s := range m.segments {
		out[i] = s.clone()
	}
	return out
}

func (m *RealModel) lookup(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrSegmentNotFound, name)
	}
	return i, nil
}

// Segment returns a copy of the named segment.
func (m *RealModel) Segment(name string) (RealSegment, error) {
	i, err := m.lookup(name)
	if err != nil {
		return RealSegment{}, err
	}
	return m.segments[i].clone(), nil
}

// GlobalTransform returns the composition of local transforms from the root down to name.
func (m *RealModel) GlobalTransform(name string) (geometry.Transform, error) {
	i, err := m.lookup(name)
	if err != nil {
		return geometry.Transform{}, err
	}
	return m.globals[i], nil
}

// MarkersOf returns the markers of a segment in its local frame.
func (m *RealModel) MarkersOf(name string) ([]RealMarker, error) {
	i, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return append([]RealMarker(nil), m.segments[i].Markers...), nil
}

// MeshOf returns the mesh vertices of a segment in its local frame.
func (m *RealModel) MeshOf(name string) ([]r3.Vec, error) {
	i, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return append([]r3.Vec(nil), m.segments[i].Mesh...), nil
}

// GlobalMarker maps a marker back to global coordinates. The first segment (in model order)
// holding the label wins.
func (m *RealModel) GlobalMarker(label string) (r3.Vec, error) {
	for i, s := range m.segments {
		for _, mk := range s.Markers {
			if mk.Label == label {
				return m.globals[i].Apply(mk.Local), nil
			}
		}
	}
	return r3.Vec{}, fmt.Errorf("%w: %q", domain.ErrUnknownMarker, label)
}

// Verify checks internal consistency: every transform is rigid with determinant +1 and
// every parent precedes its children.
func (m *RealModel) Verify(tol float64) error {
	seen := make(map[string]bool, len(m.segments))
	for i, s := range m.segments {
		if !s.IsRoot() && !seen[s.ParentName] {
			return fmt.Errorf("segment %q: parent %q not realized first", s.Name, s.ParentName)
		}
		if err := s.Local.CheckRigid(tol); err != nil {
			return fmt.Errorf("segment %q local transform: %w", s.Name, err)
		}
		if err := m.globals[i].CheckRigid(tol); err != nil {
			return fmt.Errorf("segment %q global transform: %w", s.Name, err)
		}
		seen[s.Name] = true
	}
	return nil
}
