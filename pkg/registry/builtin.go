package registry

import (
	"errors"
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/spatial/r3"
)

type offsetBelowArgs struct {
	Markers  []string `mapstructure:"markers"`
	Fraction float64  `mapstructure:"fraction"`
	Height   float64  `mapstructure:"height"`
}

// OffsetBelow is the centroid of markers moved down the global Z axis by fraction × height.
// It approximates joint centres that sit a proportion of the subject height below
// palpable landmarks, e.g. the hip below the iliac spines.
//
// Arguments: markers (list of labels), fraction, height.
func OffsetBelow(args map[string]any) (domain.SpatialReference, error) {
	var a offsetBelowArgs
	if err := decode(args, &a); err != nil {
		return domain.SpatialReference{}, err
	}
	if len(a.Markers) == 0 {
		return domain.SpatialReference{}, errors.New("markers is required")
	}
	if a.Height <= 0 {
		return domain.SpatialReference{}, fmt.Errorf("height must be positive, got %g", a.Height)
	}
	return domain.Offset(domain.MeanOf(a.Markers...), r3.Vec{Z: -a.Fraction * a.Height}), nil
}

type offsetArgs struct {
	Markers []string  `mapstructure:"markers"`
	Delta   []float64 `mapstructure:"delta"`
}

// OffsetFunc is the centroid of markers moved by a constant delta.
//
// Arguments: markers (list of labels), delta ([dx, dy, dz]).
func OffsetFunc(args map[string]any) (domain.SpatialReference, error) {
	var a offsetArgs
	if err := decode(args, &a); err != nil {
		return domain.SpatialReference{}, err
	}
	if len(a.Markers) == 0 {
		return domain.SpatialReference{}, errors.New("markers is required")
	}
	if len(a.Delta) != 3 {
		return domain.SpatialReference{}, fmt.Errorf("delta needs 3 components, got %d", len(a.Delta))
	}
	return domain.Offset(domain.MeanOf(a.Markers...), r3.Vec{X: a.Delta[0], Y: a.Delta[1], Z: a.Delta[2]}), nil
}

func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}
