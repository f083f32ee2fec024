package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
)

// Node is one segment as drawn in the tree.
type Node struct {
	Name         string
	Parent       string
	HasFrame     bool
	Translations string
	Rotations    string
	Markers      int
}

// Overlay marks segments with realization state.
type Overlay struct {
	Realized []string
	Failed   string
}

// FromTemplate lists template segments in declaration order.
func FromTemplate(t *domain.Template) []Node {
	segs := t.Segments()
	nodes := make([]Node, 0, len(segs))
	for _, s := range segs {
		nodes = append(nodes, Node{
			Name:         s.Name,
			Parent:       s.ParentName,
			HasFrame:     s.SCS != nil,
			Translations: string(s.Translations),
			Rotations:    string(s.Rotations),
			Markers:      len(s.Markers),
		})
	}
	return nodes
}

// FromModel lists realized segments, parents first.
func FromModel(m *model.RealModel) []Node {
	segs := m.Segments()
	nodes := make([]Node, 0, len(segs))
	for _, s := range segs {
		nodes = append(nodes, Node{
			Name:         s.Name,
			Parent:       s.ParentName,
			HasFrame:     true,
			Translations: string(s.Translations),
			Rotations:    string(s.Rotations),
			Markers:      len(s.Markers),
		})
	}
	return nodes
}

// GenerateMermaid produces a Mermaid flowchart of the segment tree.
// Shapes:
// - Root: ((Circle))
// - Segment inheriting its parent frame: [/Parallelogram/]
// - Default: [Rectangle]
// Edges carry the child's degrees of freedom, if any.
func GenerateMermaid(nodes []Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.Name)

		opener, closer := "[", "]"
		switch {
		case node.Parent == "":
			opener, closer = "((", "))"
		case !node.HasFrame:
			opener, closer = "[/", "/]"
		}

		label := node.Name
		if node.Markers > 0 {
			label = fmt.Sprintf("%s <br/> %d markers", node.Name, node.Markers)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		if node.Parent == "" {
			continue
		}
		arrow := "-->"
		if dof := dofLabel(node.Translations, node.Rotations); dof != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", dof)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(node.Parent), arrow, safeID)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef realized fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Realized {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s realized;\n", safeID)
			}
		}
		if overlay.Failed != "" {
			fmt.Fprintf(&sb, "    class %s failed;\n", sanitizeMermaidID(overlay.Failed))
		}
	}

	return sb.String()
}

func dofLabel(translations, rotations string) string {
	var parts []string
	if translations != "" {
		parts = append(parts, "T:"+translations)
	}
	if rotations != "" {
		parts = append(parts, "R:"+rotations)
	}
	return strings.Join(parts, " ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
