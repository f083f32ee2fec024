package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/kinetree/internal/runtime"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/dsl"
	"github.com/aretw0/kinetree/pkg/geometry"
	"github.com/aretw0/kinetree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got r3.Vec, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

func TestRealize_PelvisScenario(t *testing.T) {
	b := dsl.New("pelvis")
	b.Segment("Ground")
	pelvis(b)
	tpl := b.MustBuild()

	m, err := runtime.NewRealizer().Realize(context.Background(), tpl, staticTrial())
	require.NoError(t, err)

	g, err := m.GlobalTransform("Pelvis")
	require.NoError(t, err)

	// origin is the centroid of the four pelvic markers
	assertVec(t, r3.Vec{X: 0.035, Y: 0, Z: 0.98}, g.Origin())

	// Z is the kept global axis, X is recomputed orthogonal to it
	assertVec(t, r3.Vec{Z: 1}, g.Axis(domain.AxisZ))
	raw := r3.Unit(r3.Vec{X: 0.17, Y: 0, Z: -0.05})
	x := g.Axis(domain.AxisX)
	assertVec(t, r3.Vec{X: 1}, x)
	assert.Greater(t, r3.Norm(r3.Sub(x, raw)), 0.1, "X must not be the raw first-axis direction")
	assert.InDelta(t, 0, r3.Dot(x, g.Axis(domain.AxisZ)), tol)

	require.NoError(t, g.CheckRigid(tol))

	ground, err := m.GlobalTransform("Ground")
	require.NoError(t, err)
	assert.True(t, ground.ApproxEqual(geometry.Identity(), 0))
}

func TestRealize_MarkerRoundTrip(t *testing.T) {
	trial := staticTrial()
	m, err := runtime.NewRealizer().Realize(context.Background(), lowerBody(t), trial)
	require.NoError(t, err)
	require.NoError(t, m.Verify(tol))
	assert.Equal(t, []string{"Ground", "Pelvis", "RThigh", "RShank"}, m.Names())

	for _, name := range m.Names() {
		g, err := m.GlobalTransform(name)
		require.NoError(t, err)
		markers, err := m.MarkersOf(name)
		require.NoError(t, err)
		for _, mk := range markers {
			want, _ := trial.Lookup(mk.Label)
			assertVec(t, want, g.Apply(mk.Local), "marker %s of %s", mk.Label, name)
		}
	}

	thigh, err := m.GlobalTransform("RThigh")
	require.NoError(t, err)
	hip, err := rightHip.Resolve(trial)
	require.NoError(t, err)
	assertVec(t, hip, thigh.Origin())
	assertVec(t, r3.Unit(r3.Vec{X: 0.02, Z: 0.38}), thigh.Axis(domain.AxisZ))

	// the thigh mesh was global and is now local: mapping it back restores the trial points
	mesh, err := m.MeshOf("RThigh")
	require.NoError(t, err)
	require.Len(t, mesh, 2)
	assertVec(t, trial["RKNE"], thigh.Apply(mesh[0]))
	assertVec(t, hip, thigh.Apply(mesh[1]))
}

func TestRealize_SegmentWithoutFrame(t *testing.T) {
	m, err := runtime.NewRealizer().Realize(context.Background(), lowerBody(t), staticTrial())
	require.NoError(t, err)

	shank, err := m.Segment("RShank")
	require.NoError(t, err)
	assert.True(t, shank.Local.ApproxEqual(geometry.Identity(), tol))

	thigh, _ := m.GlobalTransform("RThigh")
	global, _ := m.GlobalTransform("RShank")
	assert.True(t, global.ApproxEqual(thigh, tol))

	// local mesh points are copied as given
	assert.Equal(t, []r3.Vec{{Z: -0.1}, {Z: -0.4}}, shank.Mesh)
}

func TestRealize_Deterministic(t *testing.T) {
	r := runtime.NewRealizer()
	tpl := lowerBody(t)

	a, err := r.Realize(context.Background(), tpl, staticTrial())
	require.NoError(t, err)
	b, err := r.Realize(context.Background(), tpl, staticTrial())
	require.NoError(t, err)

	assert.Equal(t, a.Export(), b.Export())
	assert.NotSame(t, a, b)
}

func TestRealize_TemplateUntouched(t *testing.T) {
	tpl := lowerBody(t)
	before := tpl.Names()
	pelvisBefore, _ := tpl.Segment("Pelvis")
	markersBefore := len(pelvisBefore.Markers)

	_, err := runtime.NewRealizer().Realize(context.Background(), tpl, staticTrial())
	require.NoError(t, err)

	assert.Equal(t, before, tpl.Names())
	pelvisAfter, _ := tpl.Segment("Pelvis")
	assert.Len(t, pelvisAfter.Markers, markersBefore)
	assert.NotNil(t, pelvisAfter.SCS)
}

func TestRealize_TreeErrorsComeFirst(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		tpl := lowerBody(t)
		// GHOST is not in the trial; the tree error must win
		require.NoError(t, tpl.AddSegment(domain.Segment{
			Name:       "Foot",
			ParentName: "Missing",
			Markers:    []domain.Marker{{Label: "GHOST"}},
		}))

		m, err := runtime.NewRealizer().Realize(context.Background(), tpl, staticTrial())
		assert.Nil(t, m)
		assert.ErrorIs(t, err, domain.ErrMissingParent)
		assert.NotErrorIs(t, err, domain.ErrUnknownMarker)
		assert.True(t, domain.IsAuthoringError(err))
	})

	t.Run("cycle", func(t *testing.T) {
		tpl := lowerBody(t)
		require.NoError(t, tpl.AddSegment(domain.Segment{Name: "A", ParentName: "B", Markers: []domain.Marker{{Label: "GHOST"}}}))
		require.NoError(t, tpl.AddSegment(domain.Segment{Name: "B", ParentName: "A"}))

		_, err := runtime.NewRealizer().Realize(context.Background(), tpl, staticTrial())
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
		assert.NotErrorIs(t, err, domain.ErrUnknownMarker)
	})
}

func TestRealize_UnknownMarker(t *testing.T) {
	trial := staticTrial()
	delete(trial, "RASIS")

	m, err := runtime.NewRealizer().Realize(context.Background(), lowerBody(t), trial)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownMarker)
	assert.True(t, domain.IsTrialError(err))
	assert.False(t, domain.IsAuthoringError(err))

	var re *domain.ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Pelvis", re.Segment)
	assert.Contains(t, re.Reference, "origin")
}

func TestRealize_DegenerateAxis(t *testing.T) {
	b := dsl.New("degenerate")
	b.Segment("Ground")
	b.Segment("Bone").
		Parent("Ground").
		CoordinateSystem(
			domain.MarkerRef("RKNE"),
			dsl.Between(domain.AxisX, "RKNE", "RKNE"),
			domain.GlobalAxis(domain.AxisZ),
			domain.AxisX,
		)

	_, err := runtime.NewRealizer().Realize(context.Background(), b.MustBuild(), staticTrial())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateAxis)

	var axisErr *domain.AxisError
	require.True(t, errors.As(err, &axisErr))
	assert.Equal(t, "Bone", axisErr.Segment)
	assert.Equal(t, []domain.AxisName{domain.AxisX}, axisErr.Axes)
}

func TestRealize_ParallelAxes(t *testing.T) {
	b := dsl.New("parallel")
	b.Segment("Bone").
		CoordinateSystem(
			domain.MarkerRef("RKNE"),
			dsl.Between(domain.AxisX, "RKNE", "RKNM"),
			dsl.Between(domain.AxisY, "RKNM", "RKNE"),
			domain.AxisY,
		)

	_, err := runtime.NewRealizer().Realize(context.Background(), b.MustBuild(), staticTrial())
	assert.ErrorIs(t, err, domain.ErrDegenerateAxis)
}

func TestRealize_ReferenceEvaluation(t *testing.T) {
	boom := errors.New("regression table missing")
	b := dsl.New("func")
	b.Segment("Bone").
		CoordinateSystem(
			domain.FuncRef("hip_centre", func(domain.Trial) (r3.Vec, error) { return r3.Vec{}, boom }),
			domain.GlobalAxis(domain.AxisX),
			domain.GlobalAxis(domain.AxisY),
			domain.AxisX,
		)

	_, err := runtime.NewRealizer().Realize(context.Background(), b.MustBuild(), staticTrial())
	assert.ErrorIs(t, err, domain.ErrReferenceEvaluation)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "hip_centre")
}

func TestRealize_Inertia(t *testing.T) {
	provider := func(role string) (domain.InertiaParameters, bool) {
		if role == "thigh" {
			return domain.InertiaParameters{Mass: 8.1}, true
		}
		return domain.InertiaParameters{}, false
	}

	tpl := lowerBody(t)
	pelvisSeg, _ := tpl.Segment("Pelvis")
	pelvisSeg.Inertia = &domain.InertiaParameters{Mass: 11}
	pelvisSeg.InertiaRole = "thigh"
	shank, _ := tpl.Segment("RShank")
	shank.InertiaRole = "shank"

	t.Run("with provider", func(t *testing.T) {
		m, err := runtime.NewRealizer(runtime.WithInertiaProvider(ports.InertiaFunc(provider))).
			Realize(context.Background(), tpl, staticTrial())
		require.NoError(t, err)

		p, _ := m.Segment("Pelvis")
		require.NotNil(t, p.Inertia)
		assert.Equal(t, 11.0, p.Inertia.Mass, "explicit parameters win over the provider")

		th, _ := m.Segment("RThigh")
		require.NotNil(t, th.Inertia)
		assert.Equal(t, 8.1, th.Inertia.Mass)

		sh, _ := m.Segment("RShank")
		assert.Nil(t, sh.Inertia)
	})

	t.Run("without provider", func(t *testing.T) {
		m, err := runtime.NewRealizer().Realize(context.Background(), tpl, staticTrial())
		require.NoError(t, err)
		th, _ := m.Segment("RThigh")
		assert.Nil(t, th.Inertia)
	})
}

func TestRealize_LifecycleHooks(t *testing.T) {
	var mu sync.Mutex
	var events []string
	var end *domain.RealizeEvent
	hooks := domain.LifecycleHooks{
		OnRealizeStart: func(_ context.Context, e *domain.RealizeEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, "start:"+e.Template)
		},
		OnSegmentRealized: func(_ context.Context, e *domain.SegmentEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e.Segment)
		},
		OnRealizeEnd: func(_ context.Context, e *domain.RealizeEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, "end")
			end = e
		},
	}
	r := runtime.NewRealizer(runtime.WithLifecycleHooks(hooks))

	_, err := r.Realize(context.Background(), lowerBody(t), staticTrial())
	require.NoError(t, err)
	assert.Equal(t, []string{"start:lower_body", "Ground", "Pelvis", "RThigh", "RShank", "end"}, events)
	require.NotNil(t, end)
	assert.Equal(t, 4, end.Segments)
	assert.NoError(t, end.Err)

	events = nil
	_, err = r.Realize(context.Background(), lowerBody(t), domain.StaticTrial{})
	require.Error(t, err)
	assert.Equal(t, []string{"start:lower_body", "Ground", "end"}, events)
	assert.ErrorIs(t, end.Err, domain.ErrUnknownMarker)
	assert.Zero(t, end.Segments)
}

func TestRealize_Concurrent(t *testing.T) {
	r := runtime.NewRealizer()
	tpl := lowerBody(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(shift float64) {
			defer wg.Done()
			trial := staticTrial()
			for k, v := range trial {
				trial[k] = r3.Add(v, r3.Vec{X: shift})
			}
			m, err := r.Realize(context.Background(), tpl, trial)
			if assert.NoError(t, err) {
				g, _ := m.GlobalTransform("Pelvis")
				assert.InDelta(t, 0.035+shift, g.Origin().X, tol)
			}
		}(float64(i))
	}
	wg.Wait()
}
