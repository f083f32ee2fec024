package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/kinetree/internal/config"
	"github.com/aretw0/kinetree/internal/logging"
	"github.com/aretw0/kinetree/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger. Debug forces the debug level;
// otherwise the configured level applies.
func NewLogger(cfg config.Config, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.NewWithWriter(os.Stderr, slog.LevelDebug, logging.Format(cfg.LogFormat)), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.LogFormat)), nil
}

// DebugHooks logs every lifecycle event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRealizeStart: func(ctx context.Context, e *domain.RealizeEvent) {
			logger.Debug("Realize Start", "template", e.Template)
		},
		OnSegmentRealized: func(ctx context.Context, e *domain.SegmentEvent) {
			logger.Debug("Segment", "segment", e.Segment, "parent", e.Parent, "markers", e.Markers, "mesh_points", e.MeshPoints)
		},
		OnRealizeEnd: func(ctx context.Context, e *domain.RealizeEvent) {
			if e.Err != nil {
				logger.Debug("Realize End (Error)", "template", e.Template, "err", e.Err)
				return
			}
			logger.Debug("Realize End", "template", e.Template, "segments", e.Segments, "duration", e.Duration)
		},
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
