package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/kinetree/pkg/domain"
)

// Loader implements ports.TemplateLoader and ports.TrialProvider over in-memory registries.
// Useful for tests and for embedding templates built with the dsl package.
type Loader struct {
	mu        sync.RWMutex
	templates map[string]*domain.Template
	trials    map[string]domain.StaticTrial
}

// NewLoader creates a loader with the given templates, keyed by template name.
func NewLoader(templates ...*domain.Template) *Loader {
	l := &Loader{
		templates: make(map[string]*domain.Template),
		trials:    make(map[string]domain.StaticTrial),
	}
	for _, t := range templates {
		l.AddTemplate(t)
	}
	return l
}

// AddTemplate registers a copy of the template under its name.
func (l *Loader) AddTemplate(t *domain.Template) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.templates[t.Name] = copyTemplate(t)
}

// AddTrial registers a copy of a trial under the given name.
func (l *Loader) AddTrial(name string, trial domain.StaticTrial) {
	c := make(domain.StaticTrial, len(trial))
	for k, v := range trial {
		c[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trials[name] = c
}

// LoadTemplate returns an independent copy of the named template.
func (l *Loader) LoadTemplate(ctx context.Context, name string) (*domain.Template, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.templates[name]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}
	return copyTemplate(t), nil
}

// LoadTrial returns the named trial.
func (l *Loader) LoadTrial(ctx context.Context, name string) (domain.Trial, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.trials[name]
	if !ok {
		return nil, fmt.Errorf("trial not found: %s", name)
	}
	return t, nil
}

// Templates lists registered template names.
func (l *Loader) Templates() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.templates))
	for n := range l.templates {
		names = append(names, n)
	}
	sort.Strings(names) // Deterministic order
	return names
}

func copyTemplate(t *domain.Template) *domain.Template {
	out := domain.NewTemplate(t.Name)
	for _, s := range t.Segments() {
		// Names are unique in the source, so this cannot fail.
		_ = out.AddSegment(s)
	}
	return out
}
