// Package biomod writes realized models in the bioMod text format.
package biomod

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/kinetree/pkg/model"
)

// Version is the bioMod format version emitted in the header.
const Version = 4

// Write renders d to w. Segments appear parents first, each followed by its markers.
func Write(w io.Writer, d model.Description) error {
	_, err := io.WriteString(w, Marshal(d))
	if err != nil {
		return fmt.Errorf("write biomod: %w", err)
	}
	return nil
}

// Marshal renders d as a bioMod document.
func Marshal(d model.Description) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version %d\n", Version)
	if d.Name != "" {
		fmt.Fprintf(&sb, "// %s\n", d.Name)
	}
	sb.WriteString("\n")

	for _, s := range d.Segments {
		writeSegment(&sb, s)
		for _, m := range s.Markers {
			writeMarker(&sb, s.Name, m)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeSegment(sb *strings.Builder, s model.SegmentDescription) {
	fmt.Fprintf(sb, "segment %s\n", s.Name)
	if s.Parent != "" {
		fmt.Fprintf(sb, "\tparent %s\n", s.Parent)
	}
	sb.WriteString("\tRTinMatrix 1\n")
	sb.WriteString("\tRT\n")
	for _, row := range s.Transform.Rows() {
		fmt.Fprintf(sb, "\t\t%s\n", joinFloats(row[:]))
	}
	if s.Translations != "" {
		fmt.Fprintf(sb, "\ttranslations %s\n", strings.ToLower(s.Translations))
	}
	if s.Rotations != "" {
		fmt.Fprintf(sb, "\trotations %s\n", strings.ToLower(s.Rotations))
	}
	if in := s.Inertia; in != nil {
		fmt.Fprintf(sb, "\tmass %s\n", num(in.Mass))
		fmt.Fprintf(sb, "\tcom %s\n", joinFloats([]float64{in.CenterOfMass.X, in.CenterOfMass.Y, in.CenterOfMass.Z}))
		sb.WriteString("\tinertia\n")
		for i := 0; i < 3; i++ {
			row := make([]float64, 3)
			row[i] = in.Inertia[i]
			fmt.Fprintf(sb, "\t\t%s\n", joinFloats(row))
		}
	}
	for _, p := range s.Mesh {
		fmt.Fprintf(sb, "\tmesh %s\n", joinFloats(p[:]))
	}
	sb.WriteString("endsegment\n")
}

func writeMarker(sb *strings.Builder, segment string, m model.MarkerDescription) {
	fmt.Fprintf(sb, "\n\tmarker %s\n", m.Name)
	fmt.Fprintf(sb, "\t\tparent %s\n", segment)
	fmt.Fprintf(sb, "\t\tposition %s\n", joinFloats(m.Position[:]))
	fmt.Fprintf(sb, "\t\ttechnical %d\n", boolInt(m.Technical))
	fmt.Fprintf(sb, "\t\tanatomical %d\n", boolInt(m.Anatomical))
	sb.WriteString("\tendmarker\n")
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, "\t")
}

func num(v float64) string {
	// Avoid printing negative zero.
	if v == 0 {
		v = 0
	}
	return fmt.Sprintf("%.6f", v)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
