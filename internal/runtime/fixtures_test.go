package runtime_test

import (
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/dsl"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func staticTrial() domain.StaticTrial {
	return domain.StaticTrial{
		"LASIS": {X: 0.12, Y: 0.10, Z: 0.95},
		"RASIS": {X: 0.12, Y: -0.10, Z: 0.96},
		"LPSIS": {X: -0.05, Y: 0.05, Z: 1.00},
		"RPSIS": {X: -0.05, Y: -0.05, Z: 1.01},
		"RKNE":  {X: 0.10, Y: -0.15, Z: 0.50},
		"RKNM":  {X: 0.10, Y: -0.05, Z: 0.50},
		"RTHI":  {X: 0.12, Y: -0.14, Z: 0.70},
		"RANK":  {X: 0.09, Y: -0.12, Z: 0.08},
	}
}

var rightHip = domain.Offset(domain.MarkerRef("RASIS"), r3.Vec{Z: -0.08})

func pelvis(b *dsl.Builder) *dsl.SegmentBuilder {
	return b.Segment("Pelvis").
		Parent("Ground").
		Translations(domain.DoFXYZ).
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MeanOf("LPSIS", "RPSIS", "LASIS", "RASIS"),
			dsl.Axis(domain.AxisX, domain.MeanOf("LPSIS", "RPSIS"), domain.MeanOf("LASIS", "RASIS")),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("LPSIS", "RPSIS", "LASIS", "RASIS")
}

// lowerBody is Ground -> Pelvis -> RThigh -> RShank, the shank without a frame of its own.
func lowerBody(t *testing.T) *domain.Template {
	t.Helper()
	b := dsl.New("lower_body")
	b.Segment("Ground")
	pelvis(b)
	b.Segment("RThigh").
		Parent("Pelvis").
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			rightHip,
			dsl.Axis(domain.AxisZ, domain.MeanOf("RKNE", "RKNM"), rightHip),
			dsl.Between(domain.AxisY, "RKNE", "RKNM"),
			domain.AxisZ,
		).
		Markers("RTHI", "RKNE").
		TechnicalMarker("RKNM").
		Mesh(domain.MarkerRef("RKNE"), rightHip).
		InertiaRole("thigh")
	b.Segment("RShank").
		Parent("RThigh").
		Rotations(domain.DoFX).
		Marker("RANK").
		LocalMesh(r3.Vec{Z: -0.1}, r3.Vec{Z: -0.4})

	tpl, err := b.Build()
	require.NoError(t, err)
	return tpl
}
