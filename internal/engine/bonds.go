package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/scene"
)

const (
	// breakFactor scales BreakingForce into the stretch distance at
	// which a bond snaps.
	breakFactor = 10.0

	// bondForceScale softens the raw spring so one pass per frame
	// settles instead of ringing. This is an approximate solver; exact
	// rest-length convergence is not a goal.
	bondForceScale = 0.5
)

// applyBondForces walks every connection once: resolve its modulated
// spring parameters against the from-stroke, break or drop it when
// called for, and otherwise accumulate corrective force plus an
// attenuated ripple to neighboring points into the force table.
func (e *Engine) applyBondForces() {
	kept := e.World.Connections[:0]

	for _, c := range e.World.Connections {
		fromStroke, fromPoint, okFrom := e.World.Endpoint(c.From)
		_, toPoint, okTo := e.World.Endpoint(c.To)
		if !okFrom || !okTo {
			// Stale reference; the stroke or point is gone.
			e.Stats.ConnectionsStale++
			slog.Debug("stale connection dropped", "connection", c.ID)
			continue
		}

		ctx := e.strokeContext(fromStroke)
		stiffness := e.resolve(&ctx, scene.ParamBondStiffness, c.Stiffness, c.Mod(scene.ParamBondStiffness))
		breaking := e.resolve(&ctx, scene.ParamBondBreaking, c.BreakingForce, c.Mod(scene.ParamBondBreaking))
		bias := e.resolve(&ctx, scene.ParamBondBias, c.Bias, c.Mod(scene.ParamBondBias))
		influence := int(math.Round(e.resolve(&ctx, scene.ParamBondInfluence, float64(c.Influence), c.Mod(scene.ParamBondInfluence))))
		falloff := e.resolve(&ctx, scene.ParamBondFalloff, c.Falloff, c.Mod(scene.ParamBondFalloff))

		delta := toPoint.Pos.Sub(fromPoint.Pos)
		dist := delta.Magnitude()
		stretch := dist - c.RestLength

		if breaking > 0 && math.Abs(stretch) > breaking*breakFactor {
			e.Stats.ConnectionsBroken++
			slog.Debug("connection snapped",
				"connection", c.ID,
				"stretch", stretch,
				"breaking_force", breaking,
			)
			continue
		}
		kept = append(kept, c)

		if dist < geom.Epsilon {
			// Coincident endpoints exert no direction; skip quietly.
			continue
		}
		if bias < 0 {
			bias = 0
		}
		if bias > 1 {
			bias = 1
		}

		dir := delta.Scale(1 / dist)
		f := stretch * stiffness * bondForceScale

		// Bias 0 moves only the from endpoint, 1 only the to endpoint.
		fromForce := dir.Scale(f * (1 - bias))
		toForce := dir.Scale(-f * bias)

		e.spreadForce(c.From, fromForce, influence, falloff, c.DecayEasing)
		e.spreadForce(c.To, toForce, influence, falloff, c.DecayEasing)
	}

	e.World.Connections = kept
}

// spreadForce adds the full force at the endpoint and an attenuated
// copy to up to influence neighbors on each side, producing a soft
// ripple along the chain rather than a rigid rod.
func (e *Engine) spreadForce(at scene.Endpoint, force geom.Vec2, influence int, falloff float64, decay easing.Kind) {
	table, ok := e.pointForces[at.StrokeID]
	if !ok {
		return
	}
	table[at.PointIndex] = table[at.PointIndex].Add(force)

	if influence < 0 {
		influence = 0
	}
	if falloff < 0 {
		falloff = 0
	}
	if falloff > 1 {
		falloff = 1
	}

	for k := 1; k <= influence; k++ {
		shaped := easing.Evaluate(float64(k)/float64(influence+1), decay, easing.Params{})
		att := (1 - falloff) + (1-shaped)*falloff
		ripple := force.Scale(att)

		if i := at.PointIndex - k; i >= 0 {
			table[i] = table[i].Add(ripple)
		}
		if i := at.PointIndex + k; i < len(table) {
			table[i] = table[i].Add(ripple)
		}
	}
}

// FinishStroke completes drawing: the stroke captures its origin
// center, and each end bonds to the nearest point of another stroke
// inside the auto-bond radius.
func (e *Engine) FinishStroke(s *scene.Stroke) {
	s.Finish()
	if e.cfg.AutoBondRadius <= 0 || len(s.Points) == 0 {
		return
	}

	ends := []int{0}
	if len(s.Points) > 1 {
		ends = append(ends, len(s.Points)-1)
	}
	for _, idx := range ends {
		target, ok := e.World.NearestPoint(s.Points[idx].Pos, e.cfg.AutoBondRadius, s.ID)
		if !ok {
			continue
		}
		c := scene.NewConnection(scene.Endpoint{StrokeID: s.ID, PointIndex: idx}, target)
		e.World.Connect(c)
		e.Stats.AutoBonds++
		slog.Debug("auto bond created",
			"connection", c.ID,
			"from_stroke", s.ID,
			"to_stroke", target.StrokeID,
		)
	}
}
