package file

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrialLoader implements ports.TrialProvider over static trial files
// ({name, unit, markers: {LABEL: [x, y, z]}}).
type TrialLoader struct {
	BasePath string
}

// NewTrialLoader creates a loader reading files relative to basePath.
func NewTrialLoader(basePath string) *TrialLoader {
	return &TrialLoader{BasePath: basePath}
}

// LoadTrial reads a trial file. Coordinates are converted to metres. Markers with a
// missing or non-finite coordinate (gaps, written null in JSON or .nan in YAML) are
// left out of the trial.
func (l *TrialLoader) LoadTrial(ctx context.Context, source string) (domain.Trial, error) {
	path, err := resolvePath(l.BasePath, source)
	if err != nil {
		return nil, fmt.Errorf("trial not found: %w", err)
	}
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trial %s: %w", path, err)
	}
	trial, err := DecodeTrial(doc)
	if err != nil {
		return nil, fmt.Errorf("trial %s: %w", path, err)
	}
	return trial, nil
}

// ParseTrial decodes a trial document given as bytes; format is "yaml" or "json".
func ParseTrial(data []byte, format string) (domain.StaticTrial, error) {
	doc, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}
	return DecodeTrial(doc)
}

// DecodeTrial converts a generic trial document.
func DecodeTrial(doc map[string]any) (domain.StaticTrial, error) {
	var f dto.TrialFile
	if err := mapstructure.WeakDecode(doc, &f); err != nil {
		return nil, fmt.Errorf("invalid trial: %w", err)
	}
	scale, err := unitScale(f.Unit)
	if err != nil {
		return nil, err
	}

	trial := make(domain.StaticTrial, len(f.Markers))
	for label, coords := range f.Markers {
		if len(coords) != 3 {
			return nil, fmt.Errorf("marker %s: expected 3 coordinates, got %d", label, len(coords))
		}
		p, ok := point(coords)
		if !ok {
			continue
		}
		trial[label] = r3.Scale(scale, p)
	}
	return trial, nil
}

func unitScale(unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "m":
		return 1, nil
	case "cm":
		return 0.01, nil
	case "mm":
		return 0.001, nil
	}
	return 0, fmt.Errorf("unsupported unit %q", unit)
}

// point reports false when any coordinate is null or non-finite.
func point(coords []*float64) (r3.Vec, bool) {
	var v [3]float64
	for i, c := range coords {
		if c == nil || math.IsNaN(*c) || math.IsInf(*c, 0) {
			return r3.Vec{}, false
		}
		v[i] = *c
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, true
}
