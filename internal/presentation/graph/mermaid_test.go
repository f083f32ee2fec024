package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/kinetree/internal/presentation/graph"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []graph.Node
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name:     "Root Shape",
			nodes:    []graph.Node{{Name: "Ground"}},
			contains: []string{`Ground(("Ground"))`},
		},
		{
			name: "Frame Shapes",
			nodes: []graph.Node{
				{Name: "Ground"},
				{Name: "Pelvis", Parent: "Ground", HasFrame: true, Markers: 4},
				{Name: "Foot", Parent: "Pelvis"},
			},
			contains: []string{
				`Pelvis["Pelvis <br/> 4 markers"]`,
				`Foot[/"Foot"/]`,
				"Ground --> Pelvis",
				"Pelvis --> Foot",
			},
		},
		{
			name: "DoF Labels",
			nodes: []graph.Node{
				{Name: "Pelvis", Parent: "Ground", HasFrame: true, Translations: "XYZ", Rotations: "XZ"},
			},
			contains: []string{`Ground -- "T:XYZ R:XZ" --> Pelvis`},
		},
		{
			name: "ID Sanitization",
			nodes: []graph.Node{
				{Name: "r.thigh-left"},
			},
			contains: []string{`r_thigh_left(("r.thigh-left"))`},
		},
		{
			name:    "Overlay",
			nodes:   []graph.Node{{Name: "Ground"}, {Name: "Pelvis", Parent: "Ground"}},
			overlay: &graph.Overlay{Realized: []string{"Ground", "Ground"}, Failed: "Pelvis"},
			contains: []string{
				"class Ground realized;",
				"class Pelvis failed;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.nodes, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestGenerateMermaid_OverlayDeduplicates(t *testing.T) {
	got := graph.GenerateMermaid(
		[]graph.Node{{Name: "Ground"}},
		&graph.Overlay{Realized: []string{"Ground", "Ground"}},
	)
	assert.Equal(t, 1, strings.Count(got, "class Ground realized;"))
}

func TestFromTemplate(t *testing.T) {
	b := dsl.New("t")
	b.Segment("Ground")
	b.Segment("Pelvis").
		Parent("Ground").
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MarkerRef("A"),
			dsl.Between(domain.AxisX, "A", "B"),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("A", "B")
	b.Segment("Head").Parent("Pelvis")

	nodes := graph.FromTemplate(b.MustBuild())
	assert.Equal(t, []graph.Node{
		{Name: "Ground"},
		{Name: "Pelvis", Parent: "Ground", HasFrame: true, Rotations: "XYZ", Markers: 2},
		{Name: "Head", Parent: "Pelvis"},
	}, nodes)
}
