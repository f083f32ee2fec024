package geometry

import (
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultEpsilon is the length below which an axis, or the sine of the angle between two
// axes, is treated as zero.
const DefaultEpsilon = 1e-8

// AxisVector is a resolved, unnormalized axis direction.
type AxisVector struct {
	Name domain.AxisName
	Vec  r3.Vec
}

// BuildFrame returns the global transform of a frame located at origin whose axes are
// derived from two measured directions. The axis named keep comes out as the exact unit
// direction of its input; the third axis is orthogonal to both inputs and the remaining
// axis is recomputed so that the frame is orthonormal and right-handed.
//
// Degenerate inputs (zero-length or parallel axes) yield a *domain.AxisError with an empty
// Segment field; callers fill it in.
func BuildFrame(origin r3.Vec, first, second AxisVector, keep domain.AxisName, eps float64) (Transform, error) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	if !first.Name.Valid() || !second.Name.Valid() || first.Name == second.Name {
		return Transform{}, fmt.Errorf("%w: axes %q and %q", domain.ErrInvalidReference, first.Name, second.Name)
	}

	var kept, other AxisVector
	switch keep {
	case first.Name:
		kept, other = first, second
	case second.Name:
		kept, other = second, first
	default:
		return Transform{}, fmt.Errorf("%w: %q", domain.ErrInvalidAxisToKeep, keep)
	}

	kn := r3.Norm(kept.Vec)
	if kn < eps {
		return Transform{}, &domain.AxisError{Axes: []domain.AxisName{kept.Name}, Reason: "zero-length axis"}
	}
	on := r3.Norm(other.Vec)
	if on < eps {
		return Transform{}, &domain.AxisError{Axes: []domain.AxisName{other.Name}, Reason: "zero-length axis"}
	}
	u := r3.Scale(1/kn, kept.Vec)
	o := r3.Scale(1/on, other.Vec)

	// (kept, other, third) is either an even or an odd permutation of (X, Y, Z); the cross
	// product operand order follows it so the result is right-handed.
	even := isEvenPair(kept.Name, other.Name)
	var w r3.Vec
	if even {
		w = r3.Cross(u, o)
	} else {
		w = r3.Cross(o, u)
	}
	wn := r3.Norm(w)
	if wn < eps {
		return Transform{}, &domain.AxisError{Axes: []domain.AxisName{first.Name, second.Name}, Reason: "axes are parallel"}
	}
	w = r3.Scale(1/wn, w)

	var v r3.Vec
	if even {
		v = r3.Cross(w, u)
	} else {
		v = r3.Cross(u, w)
	}
	v = r3.Unit(v)

	var cols [3]r3.Vec
	cols[kept.Name.Index()] = u
	cols[other.Name.Index()] = v
	cols[ThirdAxis(kept.Name, other.Name).Index()] = w
	return FromAxes(cols[0], cols[1], cols[2], origin), nil
}

// ThirdAxis returns the axis name that is neither a nor b.
func ThirdAxis(a, b domain.AxisName) domain.AxisName {
	for _, n := range []domain.AxisName{domain.AxisX, domain.AxisY, domain.AxisZ} {
		if n != a && n != b {
			return n
		}
	}
	return ""
}

// isEvenPair reports whether b directly follows a in the cycle X -> Y -> Z -> X.
func isEvenPair(a, b domain.AxisName) bool {
	return (b.Index()-a.Index()+3)%3 == 1
}
