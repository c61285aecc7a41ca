package engine

import (
	"math"

	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/scene"
)

const (
	// massFloor keeps F/m finite for degenerate mass values.
	massFloor = 0.1

	// audioWiggleThreshold is the bass level (after sensitivity) that
	// switches audio-driven wiggle on; audioWiggleGain converts that
	// level into extra amplitude.
	audioWiggleThreshold = 0.05
	audioWiggleGain      = 20.0
)

// integrateStroke resolves the stroke's physics parameters and runs
// semi-implicit Euler over every point, consuming the bond/tool force
// table and the stroke's swarm force. This is the hot path: it never
// allocates and never fails; malformed values are floored instead.
func (e *Engine) integrateStroke(s *scene.Stroke) {
	ctx := e.strokeContext(s)
	swarm := e.swarmForces[s.ID]
	table := e.pointForces[s.ID]
	bass := ctx.Bands.Bass * s.Params.AudioSensitivity

	for i := range s.Points {
		p := &s.Points[i]
		ctx.PointIndex = i
		ctx.Pressure = p.Pressure
		ctx.Position = p.Pos

		mass := e.resolve(&ctx, scene.ParamMass, s.Params.Mass, s.Mod(scene.ParamMass))
		friction := e.resolve(&ctx, scene.ParamFriction, s.Params.Friction, s.Mod(scene.ParamFriction))
		tension := e.resolve(&ctx, scene.ParamTension, s.Params.Tension, s.Mod(scene.ParamTension))
		amplitude := e.resolve(&ctx, scene.ParamWiggleAmplitude, s.Params.WiggleAmplitude, s.Mod(scene.ParamWiggleAmplitude))
		frequency := e.resolve(&ctx, scene.ParamWiggleFrequency, s.Params.WiggleFrequency, s.Mod(scene.ParamWiggleFrequency))
		waveSpeed := e.resolve(&ctx, scene.ParamWaveSpeed, s.Params.WaveSpeed, s.Mod(scene.ParamWaveSpeed))
		viscosity := e.resolve(&ctx, scene.ParamViscosity, s.Params.Viscosity, s.Mod(scene.ParamViscosity))
		elasticity := e.resolve(&ctx, scene.ParamElasticity, s.Params.Elasticity, s.Mod(scene.ParamElasticity))
		gravityX := e.resolve(&ctx, scene.ParamGravityX, s.Params.GravityX, s.Mod(scene.ParamGravityX))
		gravityY := e.resolve(&ctx, scene.ParamGravityY, s.Params.GravityY, s.Mod(scene.ParamGravityY))
		maxDisp := e.resolve(&ctx, scene.ParamMaxDisplacement, s.Params.MaxDisplacement, s.Mod(scene.ParamMaxDisplacement))

		if mass < massFloor {
			mass = massFloor
		}

		// Anchor spring, gravity and swarm.
		force := p.Base.Sub(p.Pos).Scale(elasticity)
		force = force.Add(geom.V(gravityX, gravityY).Scale(mass))
		force = force.Add(swarm.Scale(mass))

		// Sinusoidal wiggle, desynchronized per stroke by PhaseOffset.
		audioWiggle := s.Params.AudioToWiggle && bass > audioWiggleThreshold
		if amplitude > 0 || tension > 0 || audioWiggle {
			amp := amplitude
			if audioWiggle {
				amp += bass * audioWiggleGain
			}
			phase := float64(i)*frequency + e.Clock*waveSpeed + s.PhaseOffset
			force.X += math.Cos(phase) * amp
			force.Y += math.Sin(phase) * amp
			if tension > 0 {
				force.X += (e.rng.Float64()*2 - 1) * tension
				force.Y += (e.rng.Float64()*2 - 1) * tension
			}
		}

		// Per-stroke cursor force (distinct from the global tool).
		if ctx.CursorActive {
			mouseForce := e.resolve(&ctx, scene.ParamMouseForce, s.Params.MouseForce, s.Mod(scene.ParamMouseForce))
			mouseRadius := e.resolve(&ctx, scene.ParamMouseRadius, s.Params.MouseRadius, s.Mod(scene.ParamMouseRadius))
			mouseFalloff := e.resolve(&ctx, scene.ParamMouseFalloff, s.Params.MouseFalloff, s.Mod(scene.ParamMouseFalloff))
			force = force.Add(cursorForce(p.Pos, ctx.Cursor, mouseForce, mouseRadius, mouseFalloff))
		}

		// Bond and global-tool contributions accumulated this frame.
		force = force.Add(table[i])

		// Semi-implicit Euler: velocity first, then position.
		p.Vel = p.Vel.Add(force.Scale(1 / mass))
		p.Vel = p.Vel.Scale(friction * (1 - viscosity*0.1))
		p.Pos = p.Pos.Add(p.Vel)

		// Soft stabilizer against runaway parameter combinations.
		if maxDisp > 0 {
			disp := p.Pos.Sub(p.Base)
			if d := disp.Magnitude(); d > maxDisp {
				p.Pos = p.Base.Add(disp.Scale(maxDisp / d))
				p.Vel = p.Vel.Scale(0.5)
			}
		}

		if !p.Pos.IsFinite() {
			// A pathological parameter combination slipped through the
			// clamps; snap the point home rather than poison the scene.
			p.Pos = p.Base
			p.Vel = geom.Vec2{}
		}
	}
}

// cursorForce returns the repulsion (strength > 0) or attraction
// (strength < 0) a cursor exerts on a position, zero outside the
// radius.
func cursorForce(pos, cursor geom.Vec2, strength, radius, falloff float64) geom.Vec2 {
	if strength == 0 || radius < geom.Epsilon {
		return geom.Vec2{}
	}
	delta := pos.Sub(cursor)
	d := delta.Magnitude()
	if d >= radius {
		return geom.Vec2{}
	}
	if falloff <= 0 {
		falloff = 1
	}
	mag := math.Pow(1-d/radius, falloff) * strength
	if d < geom.Epsilon {
		// Directly under the cursor: push in a stable arbitrary
		// direction instead of dividing by zero.
		return geom.V(mag, 0)
	}
	return delta.Scale(mag / d)
}
