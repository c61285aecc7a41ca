package modulation

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/talgya/strokesim/internal/audio"
	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/geom"
)

const (
	// defaultCursorRange is the distance window used when a cursor
	// config leaves [inputMin,inputMax] unset.
	defaultCursorRange = 400.0
	// defaultCursorSpan is the axis window for the X/Y selectors.
	defaultCursorSpan = 800.0

	// pulseEdge is the linear ramp width on each side of a time-pulse
	// high window, as a fraction of the period.
	pulseEdge = 0.05

	// timeStepLevels matches the easing Step quantization.
	timeStepLevels = 4
)

// Context carries everything a single Resolve call may need. Callers
// build one per stroke per frame and patch the point-level fields when
// resolving in point scope.
type Context struct {
	ParamKey string

	// Stroke-level.
	StrokeIndex      int
	Seed             float64 // stable per-stroke seed in [0,1]
	PhaseOffset      float64
	SelectionIndex   int
	SelectionTotal   int
	AvgPressure      float64
	AudioSensitivity float64
	Center           geom.Vec2

	// Point-level; meaningful only in point scope.
	PointIndex int
	PointCount int
	Pressure   float64
	Position   geom.Vec2

	// Global.
	Clock        float64 // monotonic simulation time, seconds
	Cursor       geom.Vec2
	CursorActive bool
	Bands        audio.Bands
	Amplitude    float64 // audio-sample playback level for this stroke
}

// Resolve maps base through cfg in ctx. A nil cfg, or SourceNone,
// returns base unchanged. Resolve never fails: undefined signals fall
// back to 0 (or 0.5 where noted per source).
func Resolve(base float64, cfg *Config, ctx *Context) float64 {
	if cfg == nil || cfg.Source == SourceNone {
		return base
	}

	t := rawSignal(cfg, ctx)

	inMin, inMax := cfg.window()
	span := inMax - inMin
	if math.Abs(span) < geom.Epsilon {
		t = 0.5
	} else {
		t = (t - inMin) / span
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	p := cfg.EasingParams
	if cfg.Easing == easing.Random && p.Seed == 0 {
		p.Seed = ctx.Seed
	}
	shaped := easing.Evaluate(t, cfg.Easing, p)

	return cfg.Min + (cfg.Max-cfg.Min)*shaped
}

// rawSignal computes the unnormalized signal value for a config.
func rawSignal(cfg *Config, ctx *Context) float64 {
	switch cfg.Source {
	case SourceRandom:
		if cfg.Scope == ScopePoint {
			return stableHash(ctx.Seed, ctx.ParamKey, ctx.PointIndex)
		}
		return stableHash(ctx.Seed, ctx.ParamKey, -1)

	case SourceIndex:
		idx := ctx.StrokeIndex % 10
		if idx < 0 {
			idx += 10
		}
		return float64(idx) / 10

	case SourceSelectionIndex:
		if ctx.SelectionTotal <= 1 {
			return 0
		}
		return float64(ctx.SelectionIndex) / float64(ctx.SelectionTotal-1)

	case SourceTime:
		return 1 - math.Abs(2*timePhase(cfg, ctx)-1)

	case SourceTimePulse:
		return pulse(timePhase(cfg, ctx), cfg.Duty)

	case SourceTimeStep:
		level := math.Floor(timePhase(cfg, ctx) * timeStepLevels)
		if level > timeStepLevels-1 {
			level = timeStepLevels - 1
		}
		return level / (timeStepLevels - 1)

	case SourceVelocity, SourcePressure:
		if cfg.Scope == ScopePoint {
			return ctx.Pressure
		}
		return ctx.AvgPressure

	case SourceCursor:
		return cursorSignal(cfg, ctx)

	case SourcePath:
		return pathPos(ctx)
	case SourcePathMirror:
		return 1 - math.Abs(2*pathPos(ctx)-1)
	case SourcePathMirrorInv:
		return math.Abs(2*pathPos(ctx) - 1)

	case SourceAudioSub:
		return ctx.Bands.Sub * ctx.AudioSensitivity
	case SourceAudioBass:
		return ctx.Bands.Bass * ctx.AudioSensitivity
	case SourceAudioLowMid:
		return ctx.Bands.LowMid * ctx.AudioSensitivity
	case SourceAudioMid:
		return ctx.Bands.Mid * ctx.AudioSensitivity
	case SourceAudioHighMid:
		return ctx.Bands.HighMid * ctx.AudioSensitivity
	case SourceAudioTreble:
		return ctx.Bands.Treble * ctx.AudioSensitivity
	case SourceAudioAverage:
		return ctx.Bands.Average * ctx.AudioSensitivity
	case SourceAudioSample:
		return ctx.Amplitude

	default:
		return 0
	}
}

// timePhase returns the wrapped phase in [0,1) for the time sources,
// including the per-point shift and inversion.
func timePhase(cfg *Config, ctx *Context) float64 {
	phase := ctx.Clock * cfg.speed()
	if cfg.Scope == ScopePoint && cfg.PhaseShift != 0 {
		phase += cfg.PhaseShift * pathPos(ctx)
	}
	phase -= math.Floor(phase)
	if cfg.Invert {
		phase = 1 - phase
	}
	return phase
}

// pulse holds at 1 across the duty window with linear ramps on both
// edges, 0 elsewhere.
func pulse(phase, duty float64) float64 {
	if duty <= 0 {
		duty = 0.5
	}
	if duty > 1 {
		duty = 1
	}
	switch {
	case phase < pulseEdge:
		return phase / pulseEdge
	case phase < duty:
		return 1
	case phase < duty+pulseEdge:
		return 1 - (phase-duty)/pulseEdge
	default:
		return 0
	}
}

func cursorSignal(cfg *Config, ctx *Context) float64 {
	if !ctx.CursorActive {
		return 0
	}
	ref := ctx.Center
	if cfg.Scope == ScopePoint {
		ref = ctx.Position
	}
	switch cfg.Axis {
	case CursorX:
		return math.Abs(ref.X - ctx.Cursor.X)
	case CursorY:
		return math.Abs(ref.Y - ctx.Cursor.Y)
	default:
		return ref.Distance(ctx.Cursor)
	}
}

// pathPos is the point's normalized position along its stroke.
func pathPos(ctx *Context) float64 {
	if ctx.PointCount <= 1 {
		return 0
	}
	return float64(ctx.PointIndex) / float64(ctx.PointCount-1)
}

// stableHash digests (seed, key, pointIndex) into a uniform value in
// [0,1). Identical inputs always produce identical outputs, which is
// what makes the random source deterministic across frames.
func stableHash(seed float64, key string, pointIndex int) float64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(seed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(int64(pointIndex)))
	h.Write(buf[:])
	h.Write([]byte(key))
	return float64(h.Sum64()>>11) / float64(1<<53)
}
