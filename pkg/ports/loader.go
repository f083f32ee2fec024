package ports

import (
	"context"

	"github.com/aretw0/kinetree/pkg/domain"
)

// TemplateLoader defines how templates are retrieved.
// This allows the authoring format (YAML, JSON, Go builder) to be decoupled.
type TemplateLoader interface {
	// LoadTemplate returns the template identified by source (a path, a name...).
	LoadTemplate(ctx context.Context, source string) (*domain.Template, error)
}

// TrialProvider supplies marker positions for one static trial.
// Raw capture parsing (e.g. C3D) lives behind this interface.
type TrialProvider interface {
	LoadTrial(ctx context.Context, source string) (domain.Trial, error)
}

// InertiaProvider supplies inertial parameters for a segment role, typically from
// anthropometric tables. The second return value is false when the role is unknown.
type InertiaProvider interface {
	InertiaFor(role string) (domain.InertiaParameters, bool)
}

// InertiaFunc adapts a function to InertiaProvider.
type InertiaFunc func(role string) (domain.InertiaParameters, bool)

// InertiaFor calls f(role).
func (f InertiaFunc) InertiaFor(role string) (domain.InertiaParameters, bool) { return f(role) }
