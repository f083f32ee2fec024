package dsl

import (
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
)

// Builder manages the template construction.
type Builder struct {
	name     string
	segments map[string]*SegmentBuilder
	order    []string
}

// New creates a new template builder.
func New(name string) *Builder {
	return &Builder{
		name:     name,
		segments: make(map[string]*SegmentBuilder),
	}
}

// Segment creates a new segment in the template.
// If the segment already exists, it returns the existing builder.
func (b *Builder) Segment(name string) *SegmentBuilder {
	if sb, ok := b.segments[name]; ok {
		return sb
	}
	sb := &SegmentBuilder{
		segment: domain.Segment{Name: name},
		builder: b,
	}
	b.segments[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the segments into a template. The tree itself is not validated here;
// that happens when the template is realized.
func (b *Builder) Build() (*domain.Template, error) {
	tpl := domain.NewTemplate(b.name)
	for _, name := range b.order {
		if err := tpl.AddSegment(b.segments[name].segment); err != nil {
			return nil, fmt.Errorf("failed to build template %q: %w", b.name, err)
		}
	}
	return tpl, nil
}

// MustBuild is Build for statically known templates.
func (b *Builder) MustBuild() *domain.Template {
	tpl, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tpl
}
