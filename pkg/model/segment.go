package model

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// RealMarker is a marker expressed in the frame of the segment that owns it.
type RealMarker struct {
	Label        string
	Local        r3.Vec
	IsTechnical  bool
	IsAnatomical bool
}

// RealSegment is a realized segment. Local is relative to the parent frame.
type RealSegment struct {
	Name         string
	ParentName   string
	Local        geometry.Transform
	Translations domain.DoF
	Rotations    domain.DoF
	Markers      []RealMarker
	// Mesh vertices in the segment frame.
	Mesh    []r3.Vec
	Inertia *domain.InertiaParameters
}

// IsRoot reports whether the segment has no parent.
func (s RealSegment) IsRoot() bool { return s.ParentName == "" }

func (s RealSegment) clone() RealSegment {
	out := s
	out.Markers = append([]RealMarker(nil), s.Markers...)
	out.Mesh = append([]r3.Vec(nil), s.Mesh...)
	if s.Inertia != nil {
		in := *s.Inertia
		out.Inertia = &in
	}
	return out
}
