package engine

import (
	"math"
	"testing"

	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/modulation"
	"github.com/talgya/strokesim/internal/scene"
)

func pathElasticityConfig() modulation.Config {
	return modulation.Config{
		Source: modulation.SourcePath,
		Scope:  modulation.ScopePoint,
		Easing: easing.Linear,
		Min:    0.01,
		Max:    0.2,
	}
}

func quietParams() scene.Params {
	p := scene.DefaultParams()
	p.WiggleAmplitude = 0
	p.WiggleFrequency = 0
	p.WaveSpeed = 0
	p.Tension = 0
	p.MouseForce = 0
	return p
}

func newTestEngine(w *scene.World) *Engine {
	cfg := DefaultConfig()
	cfg.AutoBondRadius = 0
	return New(w, nil, cfg)
}

func TestSettlingConvergesUnderDamping(t *testing.T) {
	params := quietParams()
	params.Elasticity = 0.05
	params.Friction = 0.9
	params.Mass = 1

	w := scene.NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, params)
	s.Points[0].Vel = geom.V(10, 0)
	e := newTestEngine(w)

	settledAt := -1
	windowMax := 0.0
	var peaks []float64
	for frame := 0; frame < 200; frame++ {
		e.Step()
		speed := s.Points[0].Vel.Magnitude()
		if speed > windowMax {
			windowMax = speed
		}
		if (frame+1)%20 == 0 {
			peaks = append(peaks, windowMax)
			windowMax = 0
		}
		if speed < 0.01 && settledAt < 0 {
			settledAt = frame
			break
		}
	}

	if settledAt < 0 {
		t.Fatal("velocity never settled below 0.01 within 200 steps")
	}
	// The oscillation envelope must decay monotonically even though
	// the per-frame speed rises within each half cycle.
	for i := 1; i < len(peaks); i++ {
		if peaks[i] >= peaks[i-1] {
			t.Errorf("velocity envelope rose: window %d peak %v >= window %d peak %v",
				i, peaks[i], i-1, peaks[i-1])
		}
	}
}

func TestDisplacementClampHolds(t *testing.T) {
	params := quietParams()
	params.MaxDisplacement = 50
	params.GravityY = 500 // absurd on purpose
	params.Elasticity = 0

	w := scene.NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, params)
	e := newTestEngine(w)

	for frame := 0; frame < 120; frame++ {
		e.Step()
		d := s.Points[0].Pos.Distance(s.Points[0].Base)
		if d > 50+1e-9 {
			t.Fatalf("frame %d: displacement %v exceeds clamp 50", frame, d)
		}
	}
}

func TestNonPositiveMassIsFloored(t *testing.T) {
	params := quietParams()
	params.Mass = -3
	params.GravityY = 1

	w := scene.NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, params)
	e := newTestEngine(w)

	e.Step()
	p := s.Points[0]
	if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
		t.Fatalf("negative mass produced non-finite state: pos %v vel %v", p.Pos, p.Vel)
	}
}

func TestPausedEngineFreezesScene(t *testing.T) {
	params := quietParams()
	params.GravityY = 10

	w := scene.NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, params)
	e := newTestEngine(w)
	e.Playing = false

	e.Step()
	if e.Clock != 0 {
		t.Errorf("paused engine advanced clock to %v", e.Clock)
	}
	if s.Points[0].Pos != (geom.V(0, 0)) {
		t.Errorf("paused engine moved point to %v", s.Points[0].Pos)
	}
}

func TestCursorForceRepelsWithinRadius(t *testing.T) {
	if f := cursorForce(geom.V(10, 0), geom.V(0, 0), 2, 100, 1); f.X <= 0 {
		t.Errorf("repulsion X = %v, want > 0", f.X)
	}
	if f := cursorForce(geom.V(10, 0), geom.V(0, 0), -2, 100, 1); f.X >= 0 {
		t.Errorf("attraction X = %v, want < 0", f.X)
	}
	if f := cursorForce(geom.V(200, 0), geom.V(0, 0), 2, 100, 1); f != (geom.Vec2{}) {
		t.Errorf("outside radius: got %v, want zero", f)
	}
	// Falloff steepens the field: nearer the edge, higher falloff
	// must produce the weaker force.
	gentle := cursorForce(geom.V(80, 0), geom.V(0, 0), 2, 100, 1).Magnitude()
	steep := cursorForce(geom.V(80, 0), geom.V(0, 0), 2, 100, 4).Magnitude()
	if steep >= gentle {
		t.Errorf("falloff 4 force %v >= falloff 1 force %v", steep, gentle)
	}
}

func TestModulatedElasticityVariesAlongPath(t *testing.T) {
	params := quietParams()
	params.Elasticity = 0.05

	w := scene.NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, params)
	for i := 1; i < 10; i++ {
		s.AppendPoint(geom.V(float64(i)*10, 0), 0.5)
	}
	s.SetMod(scene.ParamElasticity, pathElasticityConfig())

	// Displace every point equally; stronger springs snap back harder.
	for i := range s.Points {
		s.Points[i].Pos = s.Points[i].Base.Add(geom.V(0, 20))
	}

	e := newTestEngine(w)
	e.Step()

	first := math.Abs(s.Points[0].Vel.Y)
	last := math.Abs(s.Points[len(s.Points)-1].Vel.Y)
	if last <= first {
		t.Errorf("path-modulated elasticity: end spring %v not stronger than start %v", last, first)
	}
}
