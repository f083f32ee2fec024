package kinetree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/kinetree/internal/runtime"
	"github.com/aretw0/kinetree/internal/validator"
	"github.com/aretw0/kinetree/pkg/adapters/memory"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/ports"
)

// Version is the library version reported by the CLI and the HTTP API.
const Version = "0.4.0"

// Engine is the high-level entry point for the kinetree library.
// It wraps the internal realizer and provides a simplified API for consumers.
type Engine struct {
	realizer  *runtime.Realizer
	templates ports.TemplateLoader
	trials    ports.TrialProvider
	inertia   ports.InertiaProvider
	store     ports.ModelStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	eps       float64
	// Persist makes Realize save every model it produces to the store.
	Persist bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTemplateLoader sets where RealizeFrom reads templates.
func WithTemplateLoader(l ports.TemplateLoader) Option {
	return func(e *Engine) {
		e.templates = l
	}
}

// WithTrialProvider sets where RealizeFrom reads trials.
func WithTrialProvider(p ports.TrialProvider) Option {
	return func(e *Engine) {
		e.trials = p
	}
}

// WithInertiaProvider sets the source of inertial parameters keyed by segment role.
func WithInertiaProvider(p ports.InertiaProvider) Option {
	return func(e *Engine) {
		e.inertia = p
	}
}

// WithStore sets the model store (default: in-memory).
func WithStore(s ports.ModelStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithEpsilon sets the degeneracy threshold for frame construction (default: 1e-8).
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		e.eps = eps
	}
}

// WithPersistence makes every realized model be saved to the store.
func WithPersistence() Option {
	return func(e *Engine) {
		e.Persist = true
	}
}

// New initializes a new kinetree Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{eps: geometry.DefaultEpsilon}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.eps <= 0 {
		return nil, fmt.Errorf("epsilon must be positive, got %g", eng.eps)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithEpsilon(eng.eps),
	}
	if eng.inertia != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithInertiaProvider(eng.inertia))
	}
	eng.realizer = runtime.NewRealizer(runtimeOpts...)

	return eng, nil
}

// Realize resolves the template against one static trial. With persistence enabled the
// resulting model is also saved to the store.
func (e *Engine) Realize(ctx context.Context, tpl *domain.Template, trial domain.Trial) (*model.RealModel, error) {
	m, err := e.realizer.Realize(ctx, tpl, trial)
	if err != nil {
		return nil, err
	}
	if e.Persist {
		if err := e.Save(ctx, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RealizeFrom loads a template and a trial through the configured loaders, then realizes them.
func (e *Engine) RealizeFrom(ctx context.Context, templateSource, trialSource string) (*model.RealModel, error) {
	if e.templates == nil {
		return nil, errors.New("no template loader configured")
	}
	if e.trials == nil {
		return nil, errors.New("no trial provider configured")
	}
	tpl, err := e.templates.LoadTemplate(ctx, templateSource)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", templateSource, err)
	}
	trial, err := e.trials.LoadTrial(ctx, trialSource)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial %s: %w", trialSource, err)
	}
	return e.Realize(ctx, tpl, trial)
}

// Validate checks the template tree without a trial and returns the realization order.
func (e *Engine) Validate(tpl *domain.Template) ([]string, error) {
	plan, err := validator.ValidateTemplate(tpl)
	if err != nil {
		return nil, err
	}
	return plan.Order, nil
}

// Save stores the exported model under its name.
func (e *Engine) Save(ctx context.Context, m *model.RealModel) error {
	if err := e.store.Save(ctx, m.Export()); err != nil {
		return fmt.Errorf("failed to save model %s: %w", m.Name(), err)
	}
	e.logger.Debug("model saved", "model", m.Name())
	return nil
}

// Load rebuilds a stored model.
func (e *Engine) Load(ctx context.Context, name string) (*model.RealModel, error) {
	d, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	m, err := model.FromDescription(d)
	if err != nil {
		return nil, fmt.Errorf("stored model %s is corrupt: %w", name, err)
	}
	return m, nil
}

// Models lists stored model names.
func (e *Engine) Models(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Delete removes a stored model.
func (e *Engine) Delete(ctx context.Context, name string) error {
	return e.store.Delete(ctx, name)
}

// TemplateLoader returns the configured template loader, or nil.
func (e *Engine) TemplateLoader() ports.TemplateLoader {
	return e.templates
}

// Store returns the underlying ModelStore used by the engine.
func (e *Engine) Store() ports.ModelStore {
	return e.store
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
