package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/kinetree/internal/validator"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/ports"
)

// Realizer resolves templates against trials.
// It holds no per-call state and is safe for concurrent use.
type Realizer struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	inertia ports.InertiaProvider
	eps     float64
}

var _ ports.Realizer = (*Realizer)(nil)

// NewRealizer creates a realizer with the given options.
func NewRealizer(opts ...Option) *Realizer {
	r := &Realizer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		eps:    geometry.DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Realize turns the template into a real model using one static trial.
// The tree is validated before any reference is resolved, segments are realized
// parents first, and no model is returned unless every segment succeeded.
// The template is only read.
//
// ctx is handed to lifecycle hooks; it is not checked for cancellation.
func (r *Realizer) Realize(ctx context.Context, tpl *domain.Template, trial domain.Trial) (*model.RealModel, error) {
	started := time.Now()
	name := ""
	if tpl != nil {
		name = tpl.Name
	}
	logger := r.logger.With("template", name)

	if r.hooks.OnRealizeStart != nil {
		r.hooks.OnRealizeStart(ctx, &domain.RealizeEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventRealizeStart, Template: name},
		})
	}

	m, err := r.realize(ctx, logger, tpl, trial)

	if r.hooks.OnRealizeEnd != nil {
		ev := &domain.RealizeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRealizeEnd, Template: name},
			Duration:  time.Since(started),
			Err:       err,
		}
		if m != nil {
			ev.Segments = m.Len()
		}
		r.hooks.OnRealizeEnd(ctx, ev)
	}

	if err != nil {
		logger.Error("realization failed", "err", err, "authoring", domain.IsAuthoringError(err))
		return nil, err
	}
	logger.Info("model realized", "segments", m.Len(), "duration", time.Since(started))
	return m, nil
}

func (r *Realizer) realize(ctx context.Context, logger *slog.Logger, tpl *domain.Template, trial domain.Trial) (*model.RealModel, error) {
	// 1. Tree integrity, before any numeric work
	plan, err := validator.ValidateTemplate(tpl)
	if err != nil {
		return nil, err
	}

	// 2. Parents before children
	globals := make(map[string]geometry.Transform, len(plan.Order))
	segments := make([]model.RealSegment, 0, len(plan.Order))
	for _, segName := range plan.Order {
		seg, _ := tpl.Segment(segName)

		parentGlobal := geometry.Identity()
		if !seg.IsRoot() {
			parentGlobal = globals[seg.ParentName]
		}

		rs, global, err := r.realizeSegment(seg, parentGlobal, trial)
		if err != nil {
			return nil, err
		}
		globals[segName] = global
		segments = append(segments, rs)

		logger.Debug("segment realized", "segment", segName, "parent", seg.ParentName, "markers", len(rs.Markers))
		if r.hooks.OnSegmentRealized != nil {
			r.hooks.OnSegmentRealized(ctx, &domain.SegmentEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventSegmentRealized, Template: tpl.Name},
				Segment:    segName,
				Parent:     seg.ParentName,
				Markers:    len(rs.Markers),
				MeshPoints: len(rs.Mesh),
			})
		}
	}

	return model.New(tpl.Name, segments)
}

// realizeSegment returns the realized segment and its global transform.
func (r *Realizer) realizeSegment(seg *domain.Segment, parentGlobal geometry.Transform, trial domain.Trial) (model.RealSegment, geometry.Transform, error) {
	// 3. Frame: identity for a root without SCS, the parent frame for a child without SCS
	frame := parentGlobal
	if seg.SCS != nil {
		f, err := r.buildFrame(seg, trial)
		if err != nil {
			return model.RealSegment{}, geometry.Transform{}, err
		}
		frame = f
	}
	local := parentGlobal.Inverse().Mul(frame)
	global := parentGlobal.Mul(local)
	toLocal := global.Inverse()

	rs := model.RealSegment{
		Name:         seg.Name,
		ParentName:   seg.ParentName,
		Local:        local,
		Translations: seg.Translations,
		Rotations:    seg.Rotations,
	}

	// 4. Markers
	for _, mk := range seg.Markers {
		p, err := resolve(seg.Name, "marker", mk.Reference(), trial)
		if err != nil {
			return model.RealSegment{}, geometry.Transform{}, err
		}
		rs.Markers = append(rs.Markers, model.RealMarker{
			Label:        mk.Label,
			Local:        toLocal.Apply(p),
			IsTechnical:  mk.IsTechnical,
			IsAnatomical: mk.IsAnatomical,
		})
	}

	// 5. Mesh
	if seg.Mesh != nil {
		for _, ref := range seg.Mesh.Points {
			p, err := resolve(seg.Name, "mesh point", ref, trial)
			if err != nil {
				return model.RealSegment{}, geometry.Transform{}, err
			}
			if !seg.Mesh.IsLocal {
				p = toLocal.Apply(p)
			}
			rs.Mesh = append(rs.Mesh, p)
		}
	}

	// 6. Inertia passthrough
	switch {
	case seg.Inertia != nil:
		in := *seg.Inertia
		rs.Inertia = &in
	case seg.InertiaRole != "" && r.inertia != nil:
		if in, ok := r.inertia.InertiaFor(seg.InertiaRole); ok {
			rs.Inertia = &in
		}
	}

	return rs, global, nil
}

func (r *Realizer) buildFrame(seg *domain.Segment, trial domain.Trial) (geometry.Transform, error) {
	scs := seg.SCS
	origin, err := resolve(seg.Name, "origin", scs.Origin, trial)
	if err != nil {
		return geometry.Transform{}, err
	}
	first, err := axisVector(seg.Name, scs.FirstAxis, trial)
	if err != nil {
		return geometry.Transform{}, err
	}
	second, err := axisVector(seg.Name, scs.SecondAxis, trial)
	if err != nil {
		return geometry.Transform{}, err
	}

	frame, err := geometry.BuildFrame(origin, first, second, scs.AxisToKeep, r.eps)
	if err != nil {
		var axisErr *domain.AxisError
		if errors.As(err, &axisErr) {
			axisErr.Segment = seg.Name
			return geometry.Transform{}, axisErr
		}
		return geometry.Transform{}, &domain.TemplateError{Segment: seg.Name, Err: err}
	}
	return frame, nil
}
