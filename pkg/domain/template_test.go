package domain_test

import (
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_AddSegment(t *testing.T) {
	tmpl := domain.NewTemplate("model")

	// Children may be registered before their parents.
	require.NoError(t, tmpl.AddSegment(domain.Segment{Name: "Thigh", ParentName: "Pelvis"}))
	require.NoError(t, tmpl.AddSegment(domain.Segment{Name: "Pelvis"}))

	assert.Equal(t, []string{"Thigh", "Pelvis"}, tmpl.Names())
	assert.Equal(t, 2, tmpl.Len())

	err := tmpl.AddSegment(domain.Segment{Name: "Pelvis"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSegment)
	assert.True(t, domain.IsAuthoringError(err))

	err = tmpl.AddSegment(domain.Segment{})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestTemplate_AddMarker(t *testing.T) {
	tmpl := domain.NewTemplate("model")
	require.NoError(t, tmpl.AddSegment(domain.Segment{Name: "Pelvis"}))

	require.NoError(t, tmpl.AddMarker("Pelvis", domain.Marker{Label: "LASIS", IsTechnical: true}))
	seg, ok := tmpl.Segment("Pelvis")
	require.True(t, ok)
	assert.Len(t, seg.Markers, 1)

	assert.ErrorIs(t, tmpl.AddMarker("Nope", domain.Marker{Label: "X"}), domain.ErrSegmentNotFound)
}

func TestTemplate_SegmentsAreCopies(t *testing.T) {
	tmpl := domain.NewTemplate("model")
	require.NoError(t, tmpl.AddSegment(domain.Segment{
		Name:    "Pelvis",
		Markers: []domain.Marker{{Label: "A"}},
	}))

	segs := tmpl.Segments()
	segs[0].Markers[0].Label = "changed"

	live, _ := tmpl.Segment("Pelvis")
	assert.Equal(t, "A", live.Markers[0].Label)
}

func TestTemplate_Remove(t *testing.T) {
	tmpl := domain.NewTemplate("model")
	require.NoError(t, tmpl.AddSegment(domain.Segment{Name: "A"}))
	require.NoError(t, tmpl.AddSegment(domain.Segment{Name: "B", ParentName: "A"}))

	assert.True(t, tmpl.Remove("A"))
	assert.False(t, tmpl.Remove("A"))
	assert.Equal(t, []string{"B"}, tmpl.Names())
}

func TestDoF_Validate(t *testing.T) {
	assert.NoError(t, domain.DoFXYZ.Validate())
	assert.NoError(t, domain.DoF("ZX").Validate())
	assert.NoError(t, domain.DoFNone.Validate())
	assert.ErrorIs(t, domain.DoF("XX").Validate(), domain.ErrInvalidDoF)
	assert.ErrorIs(t, domain.DoF("XW").Validate(), domain.ErrInvalidDoF)

	d, err := domain.ParseDoF(" xz ")
	require.NoError(t, err)
	assert.Equal(t, domain.DoFXZ, d)
	assert.Equal(t, []domain.AxisName{domain.AxisX, domain.AxisZ}, d.Axes())
}

func TestSCS_Validate(t *testing.T) {
	first := domain.NewAxis(domain.AxisX, domain.MarkerRef("A"), domain.MarkerRef("B"))
	second := domain.GlobalAxis(domain.AxisZ)

	ok := domain.NewSCS(domain.MarkerRef("A"), first, second, domain.AxisZ)
	assert.NoError(t, ok.Validate())

	badKeep := domain.NewSCS(domain.MarkerRef("A"), first, second, domain.AxisY)
	assert.ErrorIs(t, badKeep.Validate(), domain.ErrInvalidAxisToKeep)

	sameName := domain.NewSCS(domain.MarkerRef("A"), first, domain.GlobalAxis(domain.AxisX), domain.AxisX)
	assert.ErrorIs(t, sameName.Validate(), domain.ErrInvalidReference)
}

func TestErrorClasses(t *testing.T) {
	authoring := &domain.TemplateError{Segment: "S", Err: domain.ErrMissingParent}
	assert.True(t, domain.IsAuthoringError(authoring))
	assert.False(t, domain.IsTrialError(authoring))
	assert.ErrorIs(t, authoring, domain.ErrMissingParent)

	trial := &domain.ResolutionError{Segment: "S", Reference: "A", Err: domain.ErrUnknownMarker}
	assert.True(t, domain.IsTrialError(trial))
	assert.False(t, domain.IsAuthoringError(trial))

	axis := &domain.AxisError{Segment: "S", Axes: []domain.AxisName{domain.AxisX, domain.AxisZ}, Reason: "parallel"}
	assert.True(t, domain.IsTrialError(axis))
	assert.ErrorIs(t, axis, domain.ErrDegenerateAxis)
	assert.Contains(t, axis.Error(), "X,Z")
}
