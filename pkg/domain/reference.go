package domain

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReferenceKind tags the variant held by a SpatialReference.
type ReferenceKind string

const (
	// RefMarker resolves to the position of a single marker.
	RefMarker ReferenceKind = "marker"
	// RefMean resolves to the centroid of several markers.
	RefMean ReferenceKind = "mean"
	// RefFunction resolves by evaluating an arbitrary function of the trial.
	RefFunction ReferenceKind = "function"
)

// TrialFunc computes a point from a trial. It may resolve other references itself.
type TrialFunc func(trial Trial) (r3.Vec, error)

// SpatialReference is a deferred point: evaluating it against a Trial yields exactly one
// 3D position or an error.
type SpatialReference struct {
	Kind   ReferenceKind
	Labels []string
	Fn     TrialFunc
	// Description names a function-form reference in errors and exports.
	Description string
}

// MarkerRef references a single marker by label.
func MarkerRef(label string) SpatialReference {
	return SpatialReference{Kind: RefMarker, Labels: []string{label}}
}

// MeanOf references the centroid of the given markers.
func MeanOf(labels ...string) SpatialReference {
	return SpatialReference{Kind: RefMean, Labels: append([]string(nil), labels...)}
}

// FuncRef wraps an arbitrary function of the trial.
func FuncRef(description string, fn TrialFunc) SpatialReference {
	return SpatialReference{Kind: RefFunction, Fn: fn, Description: description}
}

// Fixed references a constant point, independent of the trial.
func Fixed(p r3.Vec) SpatialReference {
	return FuncRef(fmt.Sprintf("point(%g, %g, %g)", p.X, p.Y, p.Z), func(Trial) (r3.Vec, error) {
		return p, nil
	})
}

// Offset references base moved by delta, e.g. a joint centre a few centimetres below a landmark.
func Offset(base SpatialReference, delta r3.Vec) SpatialReference {
	desc := fmt.Sprintf("%s%+g,%+g,%+g", base.String(), delta.X, delta.Y, delta.Z)
	return FuncRef(desc, func(trial Trial) (r3.Vec, error) {
		p, err := base.Resolve(trial)
		if err != nil {
			return r3.Vec{}, err
		}
		return r3.Add(p, delta), nil
	})
}

// IsZero reports whether the reference was never set.
func (r SpatialReference) IsZero() bool {
	return r.Kind == "" && len(r.Labels) == 0 && r.Fn == nil
}

// Validate checks the reference shape without touching any trial.
func (r SpatialReference) Validate() error {
	switch r.Kind {
	case RefMarker:
		if len(r.Labels) != 1 || r.Labels[0] == "" {
			return fmt.Errorf("%w: marker reference needs exactly one label", ErrInvalidReference)
		}
	case RefMean:
		if len(r.Labels) == 0 {
			return fmt.Errorf("%w: mean of no markers", ErrInvalidReference)
		}
		for _, l := range r.Labels {
			if l == "" {
				return fmt.Errorf("%w: empty marker label", ErrInvalidReference)
			}
		}
	case RefFunction:
		if r.Fn == nil {
			return fmt.Errorf("%w: function reference %q has no function", ErrInvalidReference, r.Description)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidReference, r.Kind)
	}
	return nil
}

// Resolve evaluates the reference against a trial.
// The same reference and trial always yield the same point.
func (r SpatialReference) Resolve(trial Trial) (r3.Vec, error) {
	if err := r.Validate(); err != nil {
		return r3.Vec{}, err
	}
	switch r.Kind {
	case RefMarker:
		return lookup(trial, r.Labels[0])
	case RefMean:
		var sum r3.Vec
		for _, l := range r.Labels {
			p, err := lookup(trial, l)
			if err != nil {
				return r3.Vec{}, err
			}
			sum = r3.Add(sum, p)
		}
		return r3.Scale(1/float64(len(r.Labels)), sum), nil
	default:
		p, err := r.Fn(trial)
		if err != nil {
			return r3.Vec{}, &ReferenceEvaluationError{Description: r.String(), Err: err}
		}
		return p, nil
	}
}

// String describes the reference, e.g. "LASIS" or "mean(LASIS,RASIS)".
func (r SpatialReference) String() string {
	switch r.Kind {
	case RefMarker:
		if len(r.Labels) > 0 {
			return r.Labels[0]
		}
	case RefMean:
		return "mean(" + strings.Join(r.Labels, ",") + ")"
	case RefFunction:
		if r.Description != "" {
			return r.Description
		}
		return "function"
	}
	return "<unset>"
}

func lookup(trial Trial, label string) (r3.Vec, error) {
	if trial == nil {
		return r3.Vec{}, fmt.Errorf("%w: %q (no trial)", ErrUnknownMarker, label)
	}
	p, ok := trial.Lookup(label)
	if !ok {
		return r3.Vec{}, fmt.Errorf("%w: %q", ErrUnknownMarker, label)
	}
	return p, nil
}
