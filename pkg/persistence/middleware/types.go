package middleware

import "github.com/aretw0/kinetree/pkg/ports"

// Middleware allows wrapping a ModelStore to add behavior.
type Middleware func(ports.ModelStore) ports.ModelStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.ModelStore, mws ...Middleware) ports.ModelStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
