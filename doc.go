/*
Package kinetree builds articulated body models from optical motion-capture markers.

A model is authored once as a Template: a tree of segments whose coordinate systems,
markers and meshes are expressed symbolically, as references to marker labels, centroids
of markers, or arbitrary functions of a trial. Realizing the template against one static
trial resolves every reference, builds an orthonormal right-handed frame per segment and
produces an immutable, fully numeric RealModel.

# Concept

Authoring and realization are separate phases. A Template can be built in any order and is
never validated while it is being edited; Realize checks the whole tree first (exactly one
root, no missing parents, no cycles) and only then resolves references, parents before
children. Either every segment is realized or an error is returned.

Errors fall in two classes, testable with errors.Is:

  - domain.ErrAuthoring: the template is malformed (missing parent, cycle, bad axis choice...).
  - domain.ErrTrial: the trial lacks data or yields degenerate axes.

# Usage

	b := dsl.New("lower_body")
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
		Markers("LPSIS", "RPSIS", "LASIS", "RASIS")

	eng, err := kinetree.New(kinetree.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	m, err := eng.Realize(ctx, b.MustBuild(), trial)

The same templates can be written as YAML files and loaded with the file adapter; the
kinetree command wraps the engine for the terminal and for HTTP.
*/
package kinetree
