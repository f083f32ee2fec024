package domain

import "fmt"

// Template is the mutable, order-insensitive registry of authored segments.
// Building it never validates the tree: parents may be added after their children,
// and references are only checked when the template is realized.
//
// A Template must not be mutated while it is being realized.
type Template struct {
	Name     string
	segments map[string]*Segment
	order    []string
}

// NewTemplate creates an empty template.
func NewTemplate(name string) *Template {
	return &Template{
		Name:     name,
		segments: make(map[string]*Segment),
	}
}

// AddSegment registers a segment. Names must be unique and non-empty.
func (t *Template) AddSegment(s Segment) error {
	if s.Name == "" {
		return &TemplateError{Err: fmt.Errorf("%w: empty segment name", ErrInvalidReference)}
	}
	if t.segments == nil {
		t.segments = make(map[string]*Segment)
	}
	if _, ok := t.segments[s.Name]; ok {
		return &TemplateError{Segment: s.Name, Err: ErrDuplicateSegment}
	}
	c := s.clone()
	t.segments[s.Name] = &c
	t.order = append(t.order, s.Name)
	return nil
}

// Segment returns the live segment for in-place authoring, e.g. adding markers.
func (t *Template) Segment(name string) (*Segment, bool) {
	s, ok := t.segments[name]
	return s, ok
}

// AddMarker attaches a marker to an existing segment.
func (t *Template) AddMarker(segment string, m Marker) error {
	s, ok := t.segments[segment]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSegmentNotFound, segment)
	}
	s.AddMarker(m)
	return nil
}

// Remove deletes a segment. Children keep pointing at the removed name.
func (t *Template) Remove(name string) bool {
	if _, ok := t.segments[name]; !ok {
		return false
	}
	delete(t.segments, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns segment names in insertion order.
func (t *Template) Names() []string {
	return append([]string(nil), t.order...)
}

// Segments returns copies of all segments in insertion order.
func (t *Template) Segments() []Segment {
	out := make([]Segment, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.segments[n].clone())
	}
	return out
}

// Len returns the number of segments.
func (t *Template) Len() int { return len(t.order) }
