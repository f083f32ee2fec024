package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ModelStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level, failures at warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ModelStore) ports.ModelStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, name string, started time.Time, err error) {
	if err != nil {
		m.logger.Warn("store operation failed", "op", op, "model", name, "err", err)
		return
	}
	m.logger.Debug("store operation", "op", op, "model", name, "duration", time.Since(started))
}

func (m *loggingMiddleware) Save(ctx context.Context, d model.Description) error {
	started := time.Now()
	err := m.next.Save(ctx, d)
	m.log("save", d.Name, started, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (model.Description, error) {
	started := time.Now()
	d, err := m.next.Load(ctx, name)
	m.log("load", name, started, err)
	return d, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	started := time.Now()
	err := m.next.Delete(ctx, name)
	m.log("delete", name, started, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	started := time.Now()
	names, err := m.next.List(ctx)
	m.log("list", "", started, err)
	return names, err
}
