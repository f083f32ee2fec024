package runtime

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// resolve evaluates a reference and attributes failures to the segment being realized.
func resolve(segment, role string, ref domain.SpatialReference, trial domain.Trial) (r3.Vec, error) {
	p, err := ref.Resolve(trial)
	if err != nil {
		return r3.Vec{}, &domain.ResolutionError{
			Segment:   segment,
			Reference: role + " " + ref.String(),
			Err:       err,
		}
	}
	return p, nil
}

func axisVector(segment string, axis domain.Axis, trial domain.Trial) (geometry.AxisVector, error) {
	role := "axis " + string(axis.Name)
	start, err := resolve(segment, role+" start", axis.Start, trial)
	if err != nil {
		return geometry.AxisVector{}, err
	}
	end, err := resolve(segment, role+" end", axis.End, trial)
	if err != nil {
		return geometry.AxisVector{}, err
	}
	return geometry.AxisVector{Name: axis.Name, Vec: r3.Sub(end, start)}, nil
}
