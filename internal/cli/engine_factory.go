package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/kinetree"
	"github.com/aretw0/kinetree/internal/config"
	"github.com/aretw0/kinetree/pkg/adapters/file"
	"github.com/aretw0/kinetree/pkg/adapters/memory"
	"github.com/aretw0/kinetree/pkg/adapters/redis"
	"github.com/aretw0/kinetree/pkg/adapters/sqlite"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/persistence/middleware"
	"github.com/aretw0/kinetree/pkg/ports"
	"github.com/aretw0/kinetree/pkg/registry"
)

// rigidTolerance bounds the drift accepted when stored transforms are re-checked.
const rigidTolerance = 1e-6

// App bundles an engine with the resources that must be released after use.
type App struct {
	Engine   *kinetree.Engine
	Registry *registry.Registry
	Logger   *slog.Logger
	closers  []func() error
}

// Close releases the store connection, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewApp wires file loaders, the configured store and the optional inertia table into an engine.
func NewApp(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*App, error) {
	reg := registry.Default()
	app := &App{Registry: reg, Logger: logger}

	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		app.closers = append(app.closers, closeStore)
	}
	store = middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewVerifyMiddleware(rigidTolerance),
	)

	engineOpts := []kinetree.Option{
		kinetree.WithLogger(logger),
		kinetree.WithLifecycleHooks(hooks),
		kinetree.WithTemplateLoader(file.NewTemplateLoader(cfg.Templates, reg)),
		kinetree.WithTrialProvider(file.NewTrialLoader(cfg.Trials)),
		kinetree.WithStore(store),
		kinetree.WithEpsilon(cfg.Epsilon),
	}
	if cfg.Inertia != "" {
		table, err := file.LoadInertiaTable(cfg.Inertia)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, kinetree.WithInertiaProvider(table))
	}

	engine, err := kinetree.New(engineOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine
	return app, nil
}

// OpenStore builds the model store selected by cfg.Driver. The returned close
// function is nil for stores without a connection.
func OpenStore(cfg config.StoreConfig) (ports.ModelStore, func() error, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return memory.NewStore(), nil, nil
	case config.DriverFile:
		return file.NewStore(cfg.Path), nil, nil
	case config.DriverSQLite:
		s, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
