// Package modulation resolves "parameter + signal source + easing +
// scope" descriptors into concrete numeric values. Every modulatable
// parameter in the engine funnels through Resolve once per frame (or
// once per point per frame in point scope), so everything here is O(1)
// and allocation-free on the hot path.
package modulation

import (
	"github.com/talgya/strokesim/internal/easing"
)

// Source identifies the signal driving a modulated parameter.
type Source uint8

const (
	SourceNone Source = iota
	SourceRandom
	SourceIndex
	SourceSelectionIndex
	SourceTime
	SourceTimePulse
	SourceTimeStep
	SourceVelocity
	SourcePressure
	SourceCursor
	SourcePath
	SourcePathMirror
	SourcePathMirrorInv
	SourceAudioSub
	SourceAudioBass
	SourceAudioLowMid
	SourceAudioMid
	SourceAudioHighMid
	SourceAudioTreble
	SourceAudioAverage
	SourceAudioSample
)

// sourceNames is used for persistence and logging.
var sourceNames = map[Source]string{
	SourceNone:           "none",
	SourceRandom:         "random",
	SourceIndex:          "index",
	SourceSelectionIndex: "selection-index",
	SourceTime:           "time",
	SourceTimePulse:      "time-pulse",
	SourceTimeStep:       "time-step",
	SourceVelocity:       "velocity",
	SourcePressure:       "pressure",
	SourceCursor:         "cursor",
	SourcePath:           "path",
	SourcePathMirror:     "path-mirror",
	SourcePathMirrorInv:  "path-mirror-inv",
	SourceAudioSub:       "audio-sub",
	SourceAudioBass:      "audio-bass",
	SourceAudioLowMid:    "audio-low-mid",
	SourceAudioMid:       "audio-mid",
	SourceAudioHighMid:   "audio-high-mid",
	SourceAudioTreble:    "audio-treble",
	SourceAudioAverage:   "audio-average",
	SourceAudioSample:    "audio-sample",
}

// Name returns the stable string form of a source.
func (s Source) Name() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return "none"
}

// Scope selects whether a modulated value is shared by a whole stroke
// or resolved per point.
type Scope uint8

const (
	ScopeStroke Scope = iota
	ScopePoint
)

// SpeedMode selects how Config.Speed is interpreted for time sources.
type SpeedMode uint8

const (
	// SpeedFrequency treats Speed as cycles per second.
	SpeedFrequency SpeedMode = iota
	// SpeedDuration treats Speed as seconds per cycle.
	SpeedDuration
)

// CursorAxis selects what the cursor source measures.
type CursorAxis uint8

const (
	CursorDistance CursorAxis = iota
	CursorX
	CursorY
)

// Config describes how one named parameter is modulated. The absence
// of a Config (nil) means the parameter keeps its fixed base value.
type Config struct {
	Source Source `json:"source"`
	Scope  Scope  `json:"scope"`

	// Output range. Min > Max is valid and expresses direction
	// reversal.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	Easing       easing.Kind   `json:"easing"`
	EasingParams easing.Params `json:"easingParams"`

	// Pre-easing normalization window applied to the raw signal.
	// When both are zero the source's default window is used.
	InputMin float64 `json:"inputMin"`
	InputMax float64 `json:"inputMax"`

	// Time-source tuning.
	Speed      float64   `json:"speed"`      // 0 means 1
	SpeedMode  SpeedMode `json:"speedMode"`
	PhaseShift float64   `json:"phaseShift"` // per-point shift, point scope only
	Duty       float64   `json:"duty"`       // time-pulse high fraction, 0 means 0.5
	Invert     bool      `json:"invert"`

	// Cursor-source tuning.
	Axis CursorAxis `json:"axis"`
}

// speed returns the effective cycles-per-second rate.
func (c *Config) speed() float64 {
	s := c.Speed
	if s == 0 {
		s = 1
	}
	if c.SpeedMode == SpeedDuration {
		return 1 / s
	}
	return s
}

// window returns the input normalization bounds, falling back to the
// source's natural window when unset.
func (c *Config) window() (float64, float64) {
	if c.InputMin == 0 && c.InputMax == 0 {
		if c.Source == SourceCursor && c.Axis == CursorDistance {
			return 0, defaultCursorRange
		}
		if c.Source == SourceCursor {
			return 0, defaultCursorSpan
		}
		return 0, 1
	}
	return c.InputMin, c.InputMax
}
