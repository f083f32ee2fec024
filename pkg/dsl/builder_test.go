package dsl

import (
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuilder_LowerBody(t *testing.T) {
	b := New("lower_body")

	b.Segment("Pelvis").
		Parent("Ground").
		Translations(domain.DoFXYZ).
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MeanOf("LPSIS", "RPSIS", "LASIS", "RASIS"),
			Axis(domain.AxisX, domain.MeanOf("LPSIS", "LASIS"), domain.MeanOf("RPSIS", "RASIS")),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("LPSIS", "RPSIS").
		TechnicalMarker("LASIS").
		AnatomicalMarker("RASIS").
		InertiaRole("pelvis").
		Segment("Ground")

	tpl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "lower_body", tpl.Name)
	assert.Equal(t, []string{"Pelvis", "Ground"}, tpl.Names())

	pelvis, ok := tpl.Segment("Pelvis")
	require.True(t, ok)
	assert.Equal(t, "Ground", pelvis.ParentName)
	assert.Equal(t, domain.DoFXYZ, pelvis.Rotations)
	require.NotNil(t, pelvis.SCS)
	assert.Equal(t, domain.AxisZ, pelvis.SCS.AxisToKeep)
	assert.Equal(t, "pelvis", pelvis.InertiaRole)

	require.Len(t, pelvis.Markers, 4)
	assert.True(t, pelvis.Markers[2].IsTechnical)
	assert.False(t, pelvis.Markers[2].IsAnatomical)
	assert.False(t, pelvis.Markers[3].IsTechnical)
	assert.True(t, pelvis.Markers[3].IsAnatomical)
}

func TestBuilder_SegmentIsReused(t *testing.T) {
	b := New("t")
	b.Segment("A").Marker("M1")
	b.Segment("A").Marker("M2")

	tpl := b.MustBuild()
	a, ok := tpl.Segment("A")
	require.True(t, ok)
	assert.Len(t, a.Markers, 2)
	assert.Equal(t, 1, tpl.Len())
}

func TestBuilder_DoesNotValidateTree(t *testing.T) {
	b := New("broken")
	b.Segment("Thigh").Parent("Pelvis")
	b.Segment("Shank").Parent("Shank").Rotations("XX")

	tpl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, tpl.Len())
}

func TestBuilder_EmptyName(t *testing.T) {
	b := New("t")
	b.Segment("")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_Mesh(t *testing.T) {
	b := New("t")
	b.Segment("Foot").LocalMesh(r3.Vec{X: 0.1}, r3.Vec{Y: 0.2})
	b.Segment("Shank").Mesh(domain.MarkerRef("KNE"), domain.MarkerRef("ANK"))

	tpl := b.MustBuild()
	foot, _ := tpl.Segment("Foot")
	require.NotNil(t, foot.Mesh)
	assert.True(t, foot.Mesh.IsLocal)
	assert.Len(t, foot.Mesh.Points, 2)

	shank, _ := tpl.Segment("Shank")
	assert.False(t, shank.Mesh.IsLocal)
	assert.Equal(t, "KNE", shank.Mesh.Points[0].String())
}
