package engine

import (
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/scene"
)

const (
	// swarmSampleStride: alignment reads every 5th neighbor point's
	// velocity. This is a deliberate approximation, not per-point
	// flocking; changing it changes the look of every swarm preset.
	swarmSampleStride = 5

	swarmAlignWeight    = 0.5
	swarmCohesionWeight = 0.05
	swarmSeparateWeight = 2.0
)

// computeSwarmForces fills the per-stroke swarm table from pairwise
// separation, alignment and cohesion. O(strokes²) per frame, which is
// fine because stroke count stays far below point count.
func (e *Engine) computeSwarmForces() {
	strokes := e.World.Strokes
	if len(strokes) < 2 {
		return
	}

	cursor := geom.Vec2{}
	cursorActive := e.Pointer != nil && e.Pointer.Active
	if cursorActive {
		cursor = e.Pointer.Position()
	}

	for _, s := range strokes {
		radius := s.Params.NeighborRadius
		if radius <= 0 {
			continue
		}

		var sep, alignSum, centerSum geom.Vec2
		neighbors := 0
		sampled := 0

		for _, o := range strokes {
			if o == s {
				continue
			}
			d := s.Center.Distance(o.Center)
			if d > radius || d < geom.Epsilon {
				continue
			}
			neighbors++
			centerSum = centerSum.Add(o.Center)

			// Inverse-distance weighting: closer neighbors push harder.
			sep = sep.Add(s.Center.Sub(o.Center).Scale(1 / (d * d)))

			for k := 0; k < len(o.Points); k += swarmSampleStride {
				alignSum = alignSum.Add(o.Points[k].Vel)
				sampled++
			}
		}
		if neighbors == 0 {
			continue
		}

		var align geom.Vec2
		if sampled > 0 {
			align = alignSum.Scale(1 / float64(sampled))
		}
		cohesion := centerSum.Scale(1 / float64(neighbors)).Sub(s.Center)

		ctx := e.strokeContext(s)
		alignF := e.resolve(&ctx, scene.ParamSwarmAlignment, s.Params.SwarmAlignment, s.Mod(scene.ParamSwarmAlignment))
		cohF := e.resolve(&ctx, scene.ParamSwarmCohesion, s.Params.SwarmCohesion, s.Mod(scene.ParamSwarmCohesion))
		sepF := e.resolve(&ctx, scene.ParamSwarmSeparation, s.Params.SwarmSeparation, s.Mod(scene.ParamSwarmSeparation))

		force := align.Scale(alignF * swarmAlignWeight).
			Add(cohesion.Scale(cohF * swarmCohesionWeight)).
			Add(sep.Scale(sepF * swarmSeparateWeight))

		// Blend between "always on" and "only near the pointer".
		influence := s.Params.CursorInfluence
		if influence > 0 {
			proximity := 0.0
			if cursorActive && s.Params.MouseRadius > geom.Epsilon {
				proximity = 1 - s.Center.Distance(cursor)/s.Params.MouseRadius
				if proximity < 0 {
					proximity = 0
				}
			}
			force = force.Scale((1 - influence) + proximity*influence)
		}

		e.swarmForces[s.ID] = force
	}
}
