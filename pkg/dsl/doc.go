/*
Package dsl provides a fluent Go builder for kinetree templates.

It is the programmatic counterpart of the declarative model files read by the file adapter,
useful for tests, generated models and IDE completion. Build never validates the tree:
segments may name parents that are declared later.

Example usage:

	b := dsl.New("lower_body")

	b.Segment("Ground")

	b.Segment("Pelvis").
		Parent("Ground").
		Translations(domain.DoFXYZ).
		Rotations(domain.DoFXYZ).
		CoordinateSystem(
			domain.MeanOf("LPSIS", "RPSIS", "LASIS", "RASIS"),
			dsl.Axis(domain.AxisX, domain.MeanOf("LPSIS", "LASIS"), domain.MeanOf("RPSIS", "RASIS")),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisZ,
		).
		Markers("LPSIS", "RPSIS", "LASIS", "RASIS")

	tpl, err := b.Build()
*/
package dsl
