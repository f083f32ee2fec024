package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/ports"
)

type verifyMiddleware struct {
	next ports.ModelStore
	tol  float64
}

// NewVerifyMiddleware rebuilds every description on Save and Load and rejects it
// unless its tree is ordered and every transform is rigid within tol.
func NewVerifyMiddleware(tol float64) Middleware {
	return func(next ports.ModelStore) ports.ModelStore {
		return &verifyMiddleware{next: next, tol: tol}
	}
}

func (m *verifyMiddleware) check(d model.Description) error {
	rm, err := model.FromDescription(d)
	if err != nil {
		return fmt.Errorf("model %s: %w", d.Name, err)
	}
	if err := rm.Verify(m.tol); err != nil {
		return fmt.Errorf("model %s: %w", d.Name, err)
	}
	return nil
}

func (m *verifyMiddleware) Save(ctx context.Context, d model.Description) error {
	if err := m.check(d); err != nil {
		return err
	}
	return m.next.Save(ctx, d)
}

func (m *verifyMiddleware) Load(ctx context.Context, name string) (model.Description, error) {
	d, err := m.next.Load(ctx, name)
	if err != nil {
		return d, err
	}
	if err := m.check(d); err != nil {
		return model.Description{}, fmt.Errorf("stored %w", err)
	}
	return d, nil
}

func (m *verifyMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *verifyMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
