package runtime

import (
	"log/slog"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/ports"
)

// Option configures a Realizer.
type Option func(*Realizer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Realizer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Realizer) {
		r.hooks = hooks
	}
}

// WithInertiaProvider sets the source of inertial parameters for segments that declare
// an inertia role but no explicit parameters.
func WithInertiaProvider(p ports.InertiaProvider) Option {
	return func(r *Realizer) {
		r.inertia = p
	}
}

// WithEpsilon sets the degeneracy threshold used when building frames.
func WithEpsilon(eps float64) Option {
	return func(r *Realizer) {
		if eps > 0 {
			r.eps = eps
		}
	}
}
