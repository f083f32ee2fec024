package ports

import (
	"context"

	"github.com/aretw0/kinetree/pkg/model"
)

// ModelStore defines the interface for persisting realized models.
// Models are stored in their exported form and keyed by model name.
type ModelStore interface {
	// Save persists the description under d.Name, replacing any previous one.
	Save(ctx context.Context, d model.Description) error

	// Load retrieves a description by name.
	// Returns domain.ErrModelNotFound if the model does not exist.
	Load(ctx context.Context, name string) (model.Description, error)

	// Delete removes a description. Deleting a missing model is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored models, sorted.
	List(ctx context.Context) ([]string, error)
}
