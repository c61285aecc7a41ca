package engine

import (
	"time"

	"github.com/talgya/strokesim/internal/geom"
)

// Step advances the simulation one frame. Paused engines return
// immediately so the host can keep rendering the frozen scene.
//
// The internal order is load-bearing: global-tool forces and bond
// forces fill a per-point force table, swarm forces fill a per-stroke
// table, and only then does integration mutate positions. Points are
// never moved while another phase is still reading them.
func (e *Engine) Step() {
	if !e.Playing {
		return
	}
	start := time.Now()

	e.Stats.Frames++
	e.Clock += e.dt
	if e.Pointer != nil {
		e.Pointer.Step()
	}

	for _, s := range e.World.Strokes {
		s.UpdateCenter()
	}

	e.resetForceTables()
	e.applyToolForces()
	e.applyBondForces()
	e.computeSwarmForces()

	for _, s := range e.World.Strokes {
		e.integrateStroke(s)
	}

	e.Stats.Strokes = len(e.World.Strokes)
	e.Stats.Points = e.World.PointCount()
	e.Stats.Connections = len(e.World.Connections)
	e.Stats.LastStepMillis = float64(time.Since(start).Microseconds()) / 1000
}

// resetForceTables sizes and zeroes the scratch tables for this
// frame's stroke set.
func (e *Engine) resetForceTables() {
	seen := make(map[string]struct{}, len(e.World.Strokes))
	for _, s := range e.World.Strokes {
		seen[s.ID] = struct{}{}
		buf := e.pointForces[s.ID]
		if cap(buf) < len(s.Points) {
			buf = make([]geom.Vec2, len(s.Points))
		} else {
			buf = buf[:len(s.Points)]
			for i := range buf {
				buf[i] = geom.Vec2{}
			}
		}
		e.pointForces[s.ID] = buf
		e.swarmForces[s.ID] = geom.Vec2{}
	}
	// Drop scratch entries for strokes deleted since last frame.
	for id := range e.pointForces {
		if _, ok := seen[id]; !ok {
			delete(e.pointForces, id)
			delete(e.swarmForces, id)
		}
	}
}
