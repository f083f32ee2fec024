package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(t *testing.T, segments ...domain.Segment) *domain.Template {
	t.Helper()
	tpl := domain.NewTemplate("test")
	for _, s := range segments {
		require.NoError(t, tpl.AddSegment(s))
	}
	return tpl
}

func TestValidateTemplate_Order(t *testing.T) {
	// Children are added before their parents on purpose.
	tpl := template(t,
		domain.Segment{Name: "LFoot", ParentName: "LShank"},
		domain.Segment{Name: "RThigh", ParentName: "Pelvis"},
		domain.Segment{Name: "LThigh", ParentName: "Pelvis"},
		domain.Segment{Name: "LShank", ParentName: "LThigh"},
		domain.Segment{Name: "Pelvis", ParentName: "Ground"},
		domain.Segment{Name: "Ground"},
	)

	plan, err := ValidateTemplate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "Ground", plan.Root)
	assert.Equal(t, []string{"Ground", "Pelvis", "RThigh", "LThigh", "LShank", "LFoot"}, plan.Order)
	assert.Equal(t, []string{"RThigh", "LThigh"}, plan.Children["Pelvis"])
}

func TestValidateTemplate_TreeErrors(t *testing.T) {
	tests := []struct {
		name     string
		segments []domain.Segment
		want     error
	}{
		{
			name:     "missing parent",
			segments: []domain.Segment{{Name: "Ground"}, {Name: "Thigh", ParentName: "Pelvis"}},
			want:     domain.ErrMissingParent,
		},
		{
			name:     "self parent",
			segments: []domain.Segment{{Name: "Ground"}, {Name: "A", ParentName: "A"}},
			want:     domain.ErrCycleDetected,
		},
		{
			name: "cycle",
			segments: []domain.Segment{
				{Name: "Ground"},
				{Name: "A", ParentName: "B"},
				{Name: "B", ParentName: "C"},
				{Name: "C", ParentName: "A"},
			},
			want: domain.ErrCycleDetected,
		},
		{
			name:     "cycle without root",
			segments: []domain.Segment{{Name: "A", ParentName: "B"}, {Name: "B", ParentName: "A"}},
			want:     domain.ErrCycleDetected,
		},
		{
			name:     "multiple roots",
			segments: []domain.Segment{{Name: "Ground"}, {Name: "Floor"}},
			want:     domain.ErrMultipleRoots,
		},
		{
			name:     "invalid dof",
			segments: []domain.Segment{{Name: "Ground", Rotations: "XX"}},
			want:     domain.ErrInvalidDoF,
		},
		{
			name: "invalid axis to keep",
			segments: []domain.Segment{{
				Name: "Ground",
				SCS: domain.NewSCS(domain.MarkerRef("O"),
					domain.GlobalAxis(domain.AxisX), domain.GlobalAxis(domain.AxisY), domain.AxisZ),
			}},
			want: domain.ErrInvalidAxisToKeep,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTemplate(template(t, tt.segments...))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsAuthoringError(err))

			var te *domain.TemplateError
			assert.True(t, errors.As(err, &te))
		})
	}
}

func TestValidateTemplate_CycleNamesMembers(t *testing.T) {
	_, err := ValidateTemplate(template(t,
		domain.Segment{Name: "Ground"},
		domain.Segment{Name: "B", ParentName: "A"},
		domain.Segment{Name: "A", ParentName: "B"},
	))
	var te *domain.TemplateError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "A", te.Segment)
	assert.Contains(t, te.Detail, "B")
}

func TestValidateTemplate_Empty(t *testing.T) {
	_, err := ValidateTemplate(domain.NewTemplate("empty"))
	assert.ErrorIs(t, err, domain.ErrNoRoot)

	_, err = ValidateTemplate(nil)
	assert.ErrorIs(t, err, domain.ErrNoRoot)
}
