package file

import (
	"context"
	"fmt"
	"math"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/registry"
	"gonum.org/v1/gonum/spatial/r3"
)

// TemplateLoader implements ports.TemplateLoader over declarative model files.
type TemplateLoader struct {
	BasePath string
	Registry *registry.Registry
}

// NewTemplateLoader creates a loader reading files relative to basePath.
// A nil registry means registry.Default().
func NewTemplateLoader(basePath string, reg *registry.Registry) *TemplateLoader {
	if reg == nil {
		reg = registry.Default()
	}
	return &TemplateLoader{BasePath: basePath, Registry: reg}
}

// LoadTemplate reads and decodes a model file. source may omit the extension.
func (l *TemplateLoader) LoadTemplate(ctx context.Context, source string) (*domain.Template, error) {
	path, err := resolvePath(l.BasePath, source)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tpl, err := DecodeTemplate(doc, l.Registry)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tpl, nil
}

// ParseTemplate decodes a model document given as bytes; format is "yaml" or "json".
func ParseTemplate(data []byte, format string, reg *registry.Registry) (*domain.Template, error) {
	doc, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}
	return DecodeTemplate(doc, reg)
}

// DecodeTemplate builds a template from a generic document (as produced by a YAML or JSON decoder).
// Only the file syntax is checked here; the tree is validated when the template is realized.
func DecodeTemplate(doc map[string]any, reg *registry.Registry) (*domain.Template, error) {
	if reg == nil {
		reg = registry.Default()
	}
	var f dto.TemplateFile
	if err := decode(doc, &f); err != nil {
		return nil, &domain.TemplateError{Err: fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)}
	}

	c := converter{reg: reg, height: f.Height}
	tpl := domain.NewTemplate(f.Name)
	for _, entry := range f.Segments {
		seg, err := c.segment(entry)
		if err != nil {
			return nil, &domain.TemplateError{Segment: entry.Name, Err: err}
		}
		if err := tpl.AddSegment(seg); err != nil {
			return nil, err
		}
	}
	return tpl, nil
}

type converter struct {
	reg    *registry.Registry
	height float64
}

func (c converter) segment(e dto.SegmentEntry) (domain.Segment, error) {
	seg := domain.Segment{
		Name:        e.Name,
		ParentName:  e.Parent,
		InertiaRole: e.InertiaRole,
	}
	var err error
	if seg.Translations, err = domain.ParseDoF(e.Translations); err != nil {
		return seg, err
	}
	if seg.Rotations, err = domain.ParseDoF(e.Rotations); err != nil {
		return seg, err
	}

	if e.SCS != nil {
		if seg.SCS, err = c.scs(*e.SCS); err != nil {
			return seg, err
		}
	}

	for _, m := range e.Markers {
		seg.Markers = append(seg.Markers, domain.Marker{
			Label:        m.Name,
			IsTechnical:  flag(m.Technical),
			IsAnatomical: flag(m.Anatomical),
		})
	}

	if e.Mesh != nil {
		mesh := &domain.Mesh{IsLocal: e.Mesh.Local}
		for i, node := range e.Mesh.Points {
			ref, err := c.reference(node)
			if err != nil {
				return seg, fmt.Errorf("mesh point %d: %w", i, err)
			}
			mesh.Points = append(mesh.Points, ref)
		}
		seg.Mesh = mesh
	}

	if e.Inertia != nil {
		in, err := InertiaFromEntry(*e.Inertia)
		if err != nil {
			return seg, err
		}
		seg.Inertia = &in
	}
	return seg, nil
}

func (c converter) scs(e dto.SCSEntry) (*domain.SegmentCoordinateSystem, error) {
	origin, err := c.reference(e.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	first, err := c.axis(e.FirstAxis)
	if err != nil {
		return nil, fmt.Errorf("first_axis: %w", err)
	}
	second, err := c.axis(e.SecondAxis)
	if err != nil {
		return nil, fmt.Errorf("second_axis: %w", err)
	}
	keep, err := domain.ParseAxisName(e.Keep)
	if err != nil {
		return nil, fmt.Errorf("keep: %w", err)
	}
	return domain.NewSCS(origin, first, second, keep), nil
}

func (c converter) axis(e dto.AxisEntry) (domain.Axis, error) {
	name, err := domain.ParseAxisName(e.Name)
	if err != nil {
		return domain.Axis{}, err
	}
	switch {
	case e.Start == nil && e.End == nil:
		return domain.GlobalAxis(name), nil
	case e.Start == nil || e.End == nil:
		return domain.Axis{}, fmt.Errorf("%w: axis %s needs both start and end", domain.ErrInvalidReference, name)
	}
	start, err := c.reference(e.Start)
	if err != nil {
		return domain.Axis{}, fmt.Errorf("start: %w", err)
	}
	end, err := c.reference(e.End)
	if err != nil {
		return domain.Axis{}, fmt.Errorf("end: %w", err)
	}
	return domain.NewAxis(name, start, end), nil
}

// reference decodes one reference node: a marker label, or a map with marker, mean,
// point or function, optionally shifted by offset.
func (c converter) reference(node any) (domain.SpatialReference, error) {
	if label, ok := node.(string); ok {
		return domain.MarkerRef(label), nil
	}
	if node == nil {
		return domain.SpatialReference{}, fmt.Errorf("%w: missing reference", domain.ErrInvalidReference)
	}

	var e dto.ReferenceEntry
	if err := decode(node, &e); err != nil {
		return domain.SpatialReference{}, fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
	}

	set := 0
	for _, present := range []bool{e.Marker != "", len(e.Mean) > 0, e.Point != nil, e.Function != ""} {
		if present {
			set++
		}
	}
	if set != 1 {
		return domain.SpatialReference{}, fmt.Errorf("%w: exactly one of marker, mean, point or function is required", domain.ErrInvalidReference)
	}

	var ref domain.SpatialReference
	switch {
	case e.Marker != "":
		ref = domain.MarkerRef(e.Marker)
	case len(e.Mean) > 0:
		ref = domain.MeanOf(e.Mean...)
	case e.Point != nil:
		p, err := vec(e.Point)
		if err != nil {
			return domain.SpatialReference{}, fmt.Errorf("point: %w", err)
		}
		ref = domain.Fixed(p)
	default:
		args := make(map[string]any, len(e.Args)+1)
		for k, v := range e.Args {
			args[k] = v
		}
		if _, ok := args["height"]; !ok && c.height > 0 {
			args["height"] = c.height
		}
		built, err := c.reg.Build(e.Function, args)
		if err != nil {
			return domain.SpatialReference{}, err
		}
		ref = built
	}

	if e.Offset != nil {
		delta, err := vec(e.Offset)
		if err != nil {
			return domain.SpatialReference{}, fmt.Errorf("offset: %w", err)
		}
		ref = domain.Offset(ref, delta)
	}
	return ref, nil
}

// InertiaFromEntry converts the file form of inertial parameters.
func InertiaFromEntry(e dto.InertiaEntry) (domain.InertiaParameters, error) {
	in := domain.InertiaParameters{Mass: e.Mass}
	if e.CenterOfMass != nil {
		com, err := vec(e.CenterOfMass)
		if err != nil {
			return in, fmt.Errorf("center_of_mass: %w", err)
		}
		in.CenterOfMass = com
	}
	if e.Inertia != nil {
		if len(e.Inertia) != 3 {
			return in, fmt.Errorf("inertia needs 3 diagonal components, got %d", len(e.Inertia))
		}
		copy(in.Inertia[:], e.Inertia)
	}
	return in, nil
}

func vec(values []float64) (r3.Vec, error) {
	if len(values) != 3 {
		return r3.Vec{}, fmt.Errorf("%w: expected 3 components, got %d", domain.ErrInvalidReference, len(values))
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r3.Vec{}, fmt.Errorf("%w: non-finite component", domain.ErrInvalidReference)
		}
	}
	return r3.Vec{X: values[0], Y: values[1], Z: values[2]}, nil
}

func flag(b *bool) bool {
	return b == nil || *b
}
