package file_test

import (
	"context"
	"testing"

	"github.com/aretw0/kinetree/internal/runtime"
	"github.com/aretw0/kinetree/pkg/adapters/file"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/dsl"
	contract "github.com/aretw0/kinetree/pkg/ports/tests"
	"github.com/aretw0/kinetree/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTemplateLoader_Contract(t *testing.T) {
	loader := file.NewTemplateLoader("testdata", nil)
	contract.TemplateLoaderContractTest(t, loader, "lower_body", []string{"Ground", "Pelvis", "RFemur", "RTibia"})
}

func TestTemplateLoader_Decode(t *testing.T) {
	tpl, err := file.NewTemplateLoader("testdata", nil).LoadTemplate(context.Background(), "lower_body.yaml")
	require.NoError(t, err)
	assert.Equal(t, "lower_body", tpl.Name)

	pelvis, ok := tpl.Segment("Pelvis")
	require.True(t, ok)
	assert.Equal(t, domain.DoFXYZ, pelvis.Translations)
	assert.Equal(t, "pelvis", pelvis.InertiaRole)
	require.NotNil(t, pelvis.SCS)
	assert.Equal(t, "mean(LPSIS,RPSIS,LASIS,RASIS)", pelvis.SCS.Origin.String())
	assert.Equal(t, domain.AxisZ, pelvis.SCS.AxisToKeep)
	assert.Equal(t, domain.RefFunction, pelvis.SCS.SecondAxis.End.Kind, "axis without start/end is the global axis")
	assert.Len(t, pelvis.Mesh.Points, 5)

	femur, _ := tpl.Segment("RFemur")
	assert.Equal(t, domain.DoFXYZ, femur.Rotations)
	require.Len(t, femur.Markers, 2)
	assert.True(t, femur.Markers[0].IsTechnical)
	assert.False(t, femur.Markers[1].IsTechnical)
	assert.True(t, femur.Markers[1].IsAnatomical)
	assert.Equal(t, domain.RefFunction, femur.SCS.Origin.Kind)

	tibia, _ := tpl.Segment("RTibia")
	require.NotNil(t, tibia.Inertia)
	assert.Equal(t, 3.5, tibia.Inertia.Mass)
	assert.Equal(t, r3.Vec{Z: -0.18}, tibia.Inertia.CenterOfMass)
	assert.True(t, tibia.Mesh.IsLocal)
}

// The declarative file and the equivalent builder calls realize to the same model.
func TestTemplateLoader_MatchesBuilder(t *testing.T) {
	ctx := context.Background()
	fromFile, err := file.NewTemplateLoader("testdata", nil).LoadTemplate(ctx, "lower_body")
	require.NoError(t, err)
	trial, err := file.NewTrialLoader("testdata").LoadTrial(ctx, "static")
	require.NoError(t, err)

	hip, err := registry.OffsetBelow(map[string]any{"markers": []string{"RPSIS", "RASIS"}, "fraction": 0.05, "height": 1.75})
	require.NoError(t, err)

	b := dsl.New("lower_body")
	b.Segment("Ground")
	b.Segment("Pelvis").
		Parent("Ground").
		Translations(domain.DoFXYZ).
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MeanOf("LPSIS", "RPSIS", "LASIS", "RASIS"),
			dsl.Axis(domain.AxisX, domain.MeanOf("LPSIS", "RPSIS"), domain.MeanOf("LASIS", "RASIS")),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("LPSIS", "RPSIS", "LASIS", "RASIS").
		Mesh(domain.MarkerRef("LPSIS"), domain.MarkerRef("RPSIS"), domain.MarkerRef("RASIS"), domain.MarkerRef("LASIS"), domain.MarkerRef("LPSIS"))
	b.Segment("RFemur").
		Parent("Pelvis").
		Rotations(domain.DoFXYZ).
		CoordinateSystem(hip,
			dsl.Between(domain.AxisX, "RME", "RLE"),
			dsl.Axis(domain.AxisZ, domain.MeanOf("RME", "RLE"), hip),
			domain.AxisZ,
		).
		Marker("RLE").
		AnatomicalMarker("RME").
		Mesh(hip, domain.MarkerRef("RME"), domain.MarkerRef("RLE"), hip)
	b.Segment("RTibia").
		Parent("RFemur").
		Rotations(domain.DoFX).
		Marker("RLM").
		Inertia(domain.InertiaParameters{Mass: 3.5, CenterOfMass: r3.Vec{Z: -0.18}, Inertia: [3]float64{0.04, 0.04, 0.006}}).
		LocalMesh(r3.Vec{}, r3.Vec{Z: -0.4})

	r := runtime.NewRealizer()
	a, err := r.Realize(ctx, fromFile, trial)
	require.NoError(t, err)
	want, err := r.Realize(ctx, b.MustBuild(), trial)
	require.NoError(t, err)

	assert.Equal(t, want.Export(), a.Export())
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "name: t\nsegments:\n  - name: A\n    parnet: B\n"},
		{"bad dof", "name: t\nsegments:\n  - name: A\n    rotations: XQ\n"},
		{"bad axis name", "name: t\nsegments:\n  - name: A\n    scs: {origin: O, first_axis: {name: W}, second_axis: {name: Z}, keep: Z}\n"},
		{"half axis", "name: t\nsegments:\n  - name: A\n    scs: {origin: O, first_axis: {name: X, start: A}, second_axis: {name: Z}, keep: Z}\n"},
		{"two forms", "name: t\nsegments:\n  - name: A\n    scs: {origin: {marker: O, mean: [A, B]}, first_axis: {name: X}, second_axis: {name: Z}, keep: Z}\n"},
		{"short point", "name: t\nsegments:\n  - name: A\n    mesh: {points: [{point: [1, 2]}]}\n"},
		{"unknown function", "name: t\nsegments:\n  - name: A\n    scs: {origin: {function: nope}, first_axis: {name: X}, second_axis: {name: Z}, keep: Z}\n"},
		{"duplicate", "name: t\nsegments:\n  - name: A\n  - name: A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.ParseTemplate([]byte(tt.doc), "yaml", nil)
			require.Error(t, err)
			assert.True(t, domain.IsAuthoringError(err), "got %v", err)
		})
	}
}

func TestParseTemplate_JSON(t *testing.T) {
	doc := `{"name": "j", "segments": [{"name": "Ground"}, {"name": "Bone", "parent": "Ground",
		"scs": {"origin": {"point": [0, 0, 1], "offset": [0, 0, -0.5]},
		        "first_axis": {"name": "Y"}, "second_axis": {"name": "Z"}, "keep": "Y"}}]}`
	tpl, err := file.ParseTemplate([]byte(doc), "json", registry.Default())
	require.NoError(t, err)

	m, err := runtime.NewRealizer().Realize(context.Background(), tpl, domain.StaticTrial{})
	require.NoError(t, err)
	g, err := m.GlobalTransform("Bone")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, g.Origin().Z, 1e-12)
}

func TestTemplateLoader_NotFound(t *testing.T) {
	_, err := file.NewTemplateLoader("testdata", nil).LoadTemplate(context.Background(), "upper_body")
	assert.Error(t, err)
}
