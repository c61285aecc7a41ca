package engine

import (
	"testing"

	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/scene"
)

func TestSwarmIgnoresStrokesOutOfRadius(t *testing.T) {
	params := quietParams()
	params.NeighborRadius = 200
	params.SwarmCohesion = 1

	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, params)
	w.BeginStroke(geom.V(500, 0), 0.5, params)

	e := newTestEngine(w)
	e.Step()

	if a.Points[0].Vel != (geom.Vec2{}) {
		t.Errorf("far neighbor still moved the stroke: vel %v", a.Points[0].Vel)
	}
}

func TestSwarmCohesionPullsTowardNeighbor(t *testing.T) {
	params := quietParams()
	params.NeighborRadius = 200
	params.SwarmCohesion = 1

	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, params)
	b := w.BeginStroke(geom.V(100, 0), 0.5, params)

	e := newTestEngine(w)
	e.Step()

	if a.Points[0].Vel.X <= 0 {
		t.Errorf("stroke a velocity %v, want pull toward +x", a.Points[0].Vel.X)
	}
	if b.Points[0].Vel.X >= 0 {
		t.Errorf("stroke b velocity %v, want pull toward -x", b.Points[0].Vel.X)
	}
}

func TestSwarmSeparationPushesApart(t *testing.T) {
	params := quietParams()
	params.NeighborRadius = 200
	params.SwarmSeparation = 1

	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, params)
	w.BeginStroke(geom.V(50, 0), 0.5, params)

	e := newTestEngine(w)
	e.Step()

	if a.Points[0].Vel.X >= 0 {
		t.Errorf("stroke a velocity %v, want push toward -x", a.Points[0].Vel.X)
	}
}

func TestSwarmAlignmentSamplesEveryFifthPoint(t *testing.T) {
	params := quietParams()
	params.NeighborRadius = 200
	params.SwarmAlignment = 1

	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, params)

	// Neighbor whose sampled points (indices 0 and 5) move +x while
	// every unsampled point moves -x. Alignment must read only the
	// stride samples and come out positive.
	b := w.BeginStroke(geom.V(50, 0), 0.5, params)
	for i := 1; i < 10; i++ {
		b.AppendPoint(geom.V(50+float64(i), 0), 0.5)
	}
	for i := range b.Points {
		if i%swarmSampleStride == 0 {
			b.Points[i].Vel = geom.V(1, 0)
		} else {
			b.Points[i].Vel = geom.V(-1, 0)
		}
	}

	e := newTestEngine(w)
	e.computeSwarmForces()

	force := e.swarmForces[a.ID]
	if force.X <= 0 {
		t.Errorf("alignment force %v, want +x from stride-sampled velocities", force.X)
	}
}

func TestSwarmCursorInfluenceGatesForce(t *testing.T) {
	params := quietParams()
	params.NeighborRadius = 200
	params.SwarmCohesion = 1
	params.CursorInfluence = 1 // only active near the pointer
	params.MouseRadius = 100

	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, params)
	w.BeginStroke(geom.V(100, 0), 0.5, params)

	// Pointer far from stroke a: fully gated off.
	e := newTestEngine(w)
	e.Pointer.Move(geom.V(5000, 5000))
	e.computeSwarmForces()
	if got := e.swarmForces[a.ID]; got != (geom.Vec2{}) {
		t.Errorf("gated swarm force %v, want zero with distant pointer", got)
	}

	// Pointer on the stroke center: fully active.
	e2 := newTestEngine(w)
	e2.Pointer.Move(geom.V(0, 0))
	e2.computeSwarmForces()
	if got := e2.swarmForces[a.ID]; got.X <= 0 {
		t.Errorf("proximate pointer: force %v, want +x", got)
	}
}
