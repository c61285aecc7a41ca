package engine

import (
	"math"

	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/input"
)

// turbulence field sampling constants. The field drifts slowly over
// simulation time so the flow never looks frozen.
const (
	turbulenceScale = 0.004
	turbulenceDrift = 0.15
)

// applyToolForces accumulates the scene-wide cursor tool into the
// per-point force table. Runs before bonds and swarm so the step
// ordering stays fixed.
func (e *Engine) applyToolForces() {
	if !e.Tool.Engaged(e.Pointer) {
		return
	}
	tool := e.Tool
	if tool.Radius < geom.Epsilon || tool.Strength == 0 {
		return
	}
	falloff := tool.Falloff
	if falloff <= 0 {
		falloff = 1
	}
	cursor := e.Pointer.Position()

	for _, s := range e.World.Strokes {
		table := e.pointForces[s.ID]
		for i := range s.Points {
			pos := s.Points[i].Pos
			d := pos.Distance(cursor)
			if d >= tool.Radius {
				continue
			}
			mag := math.Pow(1-d/tool.Radius, falloff) * tool.Strength
			table[i] = table[i].Add(e.toolForce(tool.Kind, pos, cursor, d, mag))
		}
	}
}

func (e *Engine) toolForce(kind input.ToolKind, pos, cursor geom.Vec2, dist, mag float64) geom.Vec2 {
	switch kind {
	case input.ToolRepulse:
		if dist < geom.Epsilon {
			return geom.V(mag, 0)
		}
		return pos.Sub(cursor).Scale(mag / dist)
	case input.ToolAttract:
		if dist < geom.Epsilon {
			return geom.Vec2{}
		}
		return cursor.Sub(pos).Scale(mag / dist)
	case input.ToolTurbulence:
		// Sample the simplex field for a flow direction at this point.
		n := e.noise.Eval3(pos.X*turbulenceScale, pos.Y*turbulenceScale, e.Clock*turbulenceDrift)
		angle := n * 2 * math.Pi
		return geom.V(math.Cos(angle), math.Sin(angle)).Scale(mag)
	default:
		return geom.Vec2{}
	}
}
