package ports

import (
	"context"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
)

// Realizer turns a template and a trial into a real model.
// This is the interface used by adapters (e.g., HTTP) that hold no engine state of their own.
type Realizer interface {
	Realize(ctx context.Context, template *domain.Template, trial domain.Trial) (*model.RealModel, error)
}
