package kinetree_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/kinetree"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/dsl"
)

// ExampleEngine_Realize builds a pelvis frame from four markers.
func ExampleEngine_Realize() {
	b := dsl.New("pelvis")
	b.Segment("Ground")
	b.Segment("Pelvis").
		Parent("Ground").
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MeanOf("LPSIS", "RPSIS", "LASIS", "RASIS"),
			dsl.Axis(domain.AxisX, domain.MeanOf("LPSIS", "RPSIS"), domain.MeanOf("LASIS", "RASIS")),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("LASIS", "RASIS")

	trial := domain.StaticTrial{
		"LASIS": {X: 0.1, Y: 0.1, Z: 1},
		"RASIS": {X: 0.1, Y: -0.1, Z: 1},
		"LPSIS": {X: -0.1, Y: 0.05, Z: 1},
		"RPSIS": {X: -0.1, Y: -0.05, Z: 1},
	}

	eng, err := kinetree.New()
	if err != nil {
		log.Fatal(err)
	}
	m, err := eng.Realize(context.Background(), b.MustBuild(), trial)
	if err != nil {
		log.Fatal(err)
	}

	g, _ := m.GlobalTransform("Pelvis")
	fmt.Println(m.Names())
	fmt.Printf("origin %.2f %.2f %.2f\n", g.Origin().X, g.Origin().Y, g.Origin().Z)
	// Output:
	// [Ground Pelvis]
	// origin 0.00 0.00 1.00
}

// ExampleEngine_Realize_errors shows how to tell template problems from trial problems.
func ExampleEngine_Realize_errors() {
	b := dsl.New("broken")
	b.Segment("Thigh").Parent("Pelvis").Marker("KNE")

	eng, _ := kinetree.New()
	_, err := eng.Realize(context.Background(), b.MustBuild(), domain.StaticTrial{})

	fmt.Println(errors.Is(err, domain.ErrAuthoring), errors.Is(err, domain.ErrMissingParent))
	// Output:
	// true true
}
