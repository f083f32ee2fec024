package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"github.com/aretw0/kinetree/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDescription(name string) model.Description {
	return model.Description{
		Name: name,
		Segments: []model.SegmentDescription{
			{Name: "Ground", Transform: geometry.Identity()},
			{
				Name:      "Pelvis",
				Parent:    "Ground",
				Rotations: "XYZ",
				Transform: geometry.Identity(),
				Markers: []model.MarkerDescription{
					{Name: "LASIS", Segment: "Pelvis", Position: model.Point{0.1, 0.12, 0}, Anatomical: true},
				},
				Mesh:    []model.Point{{0, 0, 0.1}},
				Inertia: &domain.InertiaParameters{Mass: 9.2, Inertia: [3]float64{0.08, 0.07, 0.06}},
			},
		},
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	name := "contract-model-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		d := contractDescription(name)
		require.NoError(t, store.Save(ctx, d), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, d, loaded)

		m, err := model.FromDescription(loaded)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ground", "Pelvis"}, m.Names())
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		d := contractDescription(name)
		d.Segments = d.Segments[:1]
		require.NoError(t, store.Save(ctx, d))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded.Segments, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractDescription(name)))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, contractDescription(id2)))
		require.NoError(t, store.Save(ctx, contractDescription(id1)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
