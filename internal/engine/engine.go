// Package engine advances the stroke physics scene one frame at a
// time: global-tool forces, bond forces, swarm forces, then per-point
// integration, in that fixed order.
package engine

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/strokesim/internal/audio"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/input"
	"github.com/talgya/strokesim/internal/modulation"
	"github.com/talgya/strokesim/internal/scene"
)

// Config tunes engine-wide behavior.
type Config struct {
	FPS int // simulation frame rate the clock advances at

	// AutoBondRadius bonds a finished stroke's endpoints to the
	// nearest existing point inside this radius. 0 disables.
	AutoBondRadius float64

	// TurbulenceSeed feeds the simplex field behind the turbulence
	// tool.
	TurbulenceSeed int64
}

// DefaultConfig returns a 60 FPS engine with auto-bonding on.
func DefaultConfig() Config {
	return Config{
		FPS:            60,
		AutoBondRadius: 24,
		TurbulenceSeed: 1,
	}
}

// Stats tracks aggregate counters, reported periodically by the loop.
type Stats struct {
	Frames            uint64  `json:"frames"`
	Strokes           int     `json:"strokes"`
	Points            int     `json:"points"`
	Connections       int     `json:"connections"`
	ConnectionsBroken uint64  `json:"connections_broken"`
	ConnectionsStale  uint64  `json:"connections_stale"`
	AutoBonds         uint64  `json:"auto_bonds"`
	LastStepMillis    float64 `json:"last_step_ms"`
}

// Engine owns the per-frame simulation step. It is the world's single
// writer: nothing else mutates strokes or connections while it runs,
// and readers (rendering, hit-testing) go after Step returns.
type Engine struct {
	World   *scene.World
	Audio   audio.Provider
	Pointer *input.Pointer
	Tool    input.Tool

	// Playing gates stepping; paused means render-only frames.
	Playing bool

	// Clock is monotonic simulation time in seconds. It only advances
	// while playing, so pausing freezes every time-driven modulation.
	Clock float64

	Stats Stats

	cfg   Config
	dt    float64
	noise opensimplex.Noise
	rng   *rand.Rand

	// Scratch force tables, reused across frames. pointForces is
	// keyed by stroke ID and parallel to the stroke's point slice.
	pointForces map[string][]geom.Vec2
	swarmForces map[string]geom.Vec2
}

// New creates an engine over a world.
func New(w *scene.World, provider audio.Provider, cfg Config) *Engine {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if provider == nil {
		provider = audio.Silence{}
	}
	return &Engine{
		World:       w,
		Audio:       provider,
		Pointer:     input.NewPointer(cfg.FPS),
		Playing:     true,
		cfg:         cfg,
		dt:          1 / float64(cfg.FPS),
		noise:       opensimplex.NewNormalized(cfg.TurbulenceSeed),
		rng:         rand.New(rand.NewSource(cfg.TurbulenceSeed)),
		pointForces: make(map[string][]geom.Vec2),
		swarmForces: make(map[string]geom.Vec2),
	}
}

// strokeContext builds the modulation context for one stroke. Point
// fields are patched in by the per-point loops.
func (e *Engine) strokeContext(s *scene.Stroke) modulation.Context {
	ctx := modulation.Context{
		StrokeIndex:      s.Index,
		Seed:             s.Seed,
		PhaseOffset:      s.PhaseOffset,
		SelectionIndex:   s.SelectionIndex,
		SelectionTotal:   s.SelectionTotal,
		AvgPressure:      s.AvgPressure(),
		AudioSensitivity: s.Params.AudioSensitivity,
		Center:           s.Center,
		PointCount:       len(s.Points),
		Clock:            e.Clock,
		Bands:            e.Audio.SpectralBands(),
		Amplitude:        e.Audio.StrokeAmplitude(s.ID),
	}
	if e.Pointer != nil && e.Pointer.Active {
		ctx.Cursor = e.Pointer.Position()
		ctx.CursorActive = true
	}
	return ctx
}

// resolve runs one parameter through its modulation, if any.
func (e *Engine) resolve(ctx *modulation.Context, key string, base float64, cfg *modulation.Config) float64 {
	ctx.ParamKey = key
	return modulation.Resolve(base, cfg, ctx)
}
