package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRealizeStart    EventType = "realize_start"
	EventSegmentRealized EventType = "segment_realized"
	EventRealizeEnd      EventType = "realize_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Template  string    `json:"template"`
}

// RealizeEvent brackets one realization of a template against a trial.
type RealizeEvent struct {
	EventBase
	Segments int           `json:"segments"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// SegmentEvent reports one segment turned into numeric data.
type SegmentEvent struct {
	EventBase
	Segment    string `json:"segment"`
	Parent     string `json:"parent,omitempty"`
	Markers    int    `json:"markers"`
	MeshPoints int    `json:"mesh_points"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRealizeStart    func(context.Context, *RealizeEvent)
	OnSegmentRealized func(context.Context, *SegmentEvent)
	OnRealizeEnd      func(context.Context, *RealizeEvent)
}

// Merge chains two hook sets; h runs before other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRealizeStart:    chain(h.OnRealizeStart, other.OnRealizeStart),
		OnSegmentRealized: chain(h.OnSegmentRealized, other.OnSegmentRealized),
		OnRealizeEnd:      chain(h.OnRealizeEnd, other.OnRealizeEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
