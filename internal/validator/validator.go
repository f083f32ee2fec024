package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/kinetree/pkg/domain"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Plan is the traversal order of a valid template.
type Plan struct {
	Root string
	// Order lists every segment breadth-first from the root, parents before children.
	Order []string
	// Children maps a segment to its children in template insertion order.
	Children map[string][]string
}

// ValidateTemplate checks the authoring invariants of a template and returns its traversal plan.
// Every error it returns is a *domain.TemplateError.
func ValidateTemplate(t *domain.Template) (*Plan, error) {
	if t == nil || t.Len() == 0 {
		return nil, &domain.TemplateError{Err: domain.ErrNoRoot, Detail: "template is empty"}
	}
	segments := t.Segments()

	// 1. Per-segment checks
	index := make(map[string]int64, len(segments))
	for i, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		index[s.Name] = int64(i)
	}

	// 2. Parent links
	var roots []string
	children := make(map[string][]string, len(segments))
	for _, s := range segments {
		if s.IsRoot() {
			roots = append(roots, s.Name)
			continue
		}
		if s.ParentName == s.Name {
			return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrCycleDetected, Detail: "segment is its own parent"}
		}
		if _, ok := index[s.ParentName]; !ok {
			return nil, &domain.TemplateError{Segment: s.Name, Err: domain.ErrMissingParent, Detail: fmt.Sprintf("parent %q", s.ParentName)}
		}
		children[s.ParentName] = append(children[s.ParentName], s.Name)
	}

	// 3. Cycles
	if err := checkCycles(segments, index); err != nil {
		return nil, err
	}

	// 4. Single root
	switch len(roots) {
	case 0:
		return nil, &domain.TemplateError{Err: domain.ErrNoRoot}
	case 1:
	default:
		return nil, &domain.TemplateError{Err: domain.ErrMultipleRoots, Detail: strings.Join(roots, ", ")}
	}

	// 5. Breadth-first order
	plan := &Plan{Root: roots[0], Children: children}
	visited := make(map[string]bool, len(segments))
	queue := []string{roots[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		plan.Order = append(plan.Order, current)
		queue = append(queue, children[current]...)
	}
	if len(plan.Order) != len(segments) {
		// Unreachable with a single root and no cycles, kept as a guard.
		return nil, &domain.TemplateError{Err: domain.ErrCycleDetected, Detail: "segments unreachable from root"}
	}
	return plan, nil
}

func checkCycles(segments []domain.Segment, index map[string]int64) error {
	g := simple.NewDirectedGraph()
	for i := range segments {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, s := range segments {
		if s.IsRoot() {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(index[s.ParentName]), simple.Node(index[s.Name])))
	}

	_, err := topo.Sort(g)
	if err == nil {
		return nil
	}
	var cycles topo.Unorderable
	if !errors.As(err, &cycles) || len(cycles) == 0 {
		return &domain.TemplateError{Err: domain.ErrCycleDetected, Detail: err.Error()}
	}
	names := make([]string, 0, len(cycles[0]))
	for _, n := range cycles[0] {
		names = append(names, segments[n.ID()].Name)
	}
	sort.Strings(names)
	return &domain.TemplateError{Segment: names[0], Err: domain.ErrCycleDetected, Detail: strings.Join(names, " -> ")}
}
