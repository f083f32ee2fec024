package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/kinetree/pkg/model"
)

// Summary describes a realized model as markdown: one row per segment with its
// global origin, then the markers of each segment.
func Summary(m *model.RealModel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Name())
	fmt.Fprintf(&sb, "%d segments, root `%s`.\n\n", m.Len(), m.Root())

	sb.WriteString("| Segment | Parent | Translations | Rotations | Global origin | Markers |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range m.Segments() {
		g, _ := m.GlobalTransform(s.Name)
		o := g.Origin()
		parent := s.ParentName
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | (%.3f, %.3f, %.3f) | %d |\n",
			s.Name, parent, dash(string(s.Translations)), dash(string(s.Rotations)), o.X, o.Y, o.Z, len(s.Markers))
	}

	for _, s := range m.Segments() {
		if len(s.Markers) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", s.Name)
		for _, mk := range s.Markers {
			kind := []string{}
			if mk.IsTechnical {
				kind = append(kind, "technical")
			}
			if mk.IsAnatomical {
				kind = append(kind, "anatomical")
			}
			fmt.Fprintf(&sb, "- **%s** (%.3f, %.3f, %.3f) %s\n",
				mk.Label, mk.Local.X, mk.Local.Y, mk.Local.Z, strings.Join(kind, ", "))
		}
	}
	return sb.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
