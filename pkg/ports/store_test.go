package ports_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/ports"
)

// MockStore is a JSON-backed map implementation of ModelStore for testing purposes.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Save(ctx context.Context, d model.Description) error {
	// Serialise to simulate a real backend
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[d.Name] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, name string) (model.Description, error) {
	m.mu.Lock()
	raw, ok := m.data[name]
	m.mu.Unlock()
	if !ok {
		return model.Description{}, domain.ErrModelNotFound
	}
	var d model.Description
	err := json.Unmarshal(raw, &d)
	return d, err
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.data))
	for n := range m.data {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func TestModelStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, NewMockStore())
}

func TestInertiaFunc(t *testing.T) {
	var p ports.InertiaProvider = ports.InertiaFunc(func(role string) (domain.InertiaParameters, bool) {
		return domain.InertiaParameters{Mass: 1}, role == "pelvis"
	})
	if _, ok := p.InertiaFor("pelvis"); !ok {
		t.Error("expected pelvis to be known")
	}
	if _, ok := p.InertiaFor("arm"); ok {
		t.Error("expected arm to be unknown")
	}
}
