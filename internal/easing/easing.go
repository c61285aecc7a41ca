// Package easing provides the curve evaluator that shapes modulation
// signals and bond-force decay. Evaluation is pure and allocation-free.
package easing

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Kind selects a response curve.
type Kind uint8

const (
	Linear Kind = iota
	QuadIn
	QuadOut
	QuadInOut
	Step        // quantized to a fixed number of levels
	Triangle    // rises to 1 at t=0.5, falls back to 0
	TriangleInv // falls to 0 at t=0.5, rises back to 1
	Sine        // smooth fold, sin(pi*t)
	Random      // stable hash of (seed, t); deterministic per seed
	Bezier      // cubic over caller-supplied ordinates; may overshoot
)

// stepLevels is the quantization count for the Step kind.
const stepLevels = 4

// Params carries the per-curve tuning. The zero value is valid for
// every kind except Bezier, which reads all four ordinates.
type Params struct {
	Seed float64 `json:"seed,omitempty"` // consumed by Random

	// Bezier ordinates: output at t=0, two interior control outputs,
	// output at t=1.
	Start float64 `json:"start,omitempty"`
	CP1   float64 `json:"cp1,omitempty"`
	CP2   float64 `json:"cp2,omitempty"`
	End   float64 `json:"end,omitempty"`
}

// Evaluate maps t through the curve identified by kind. t is clamped
// to [0,1] for every kind except Bezier, whose callers clamp first.
// Outputs may exceed [0,1] only for Bezier.
func Evaluate(t float64, kind Kind, p Params) float64 {
	if kind != Bezier {
		t = clamp01(t)
	}

	switch kind {
	case Linear:
		return t
	case QuadIn:
		return t * t
	case QuadOut:
		return t * (2 - t)
	case QuadInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	case Step:
		level := math.Floor(t * stepLevels)
		if level > stepLevels-1 {
			level = stepLevels - 1
		}
		return level / (stepLevels - 1)
	case Triangle:
		return 1 - math.Abs(2*t-1)
	case TriangleInv:
		return math.Abs(2*t - 1)
	case Sine:
		return math.Sin(math.Pi * t)
	case Random:
		return hashUnit(p.Seed, t)
	case Bezier:
		return bezier(t, p)
	default:
		return t
	}
}

// bezier evaluates the cubic Bernstein polynomial over the four
// output ordinates. No clamping: overshoot and dips are the point.
func bezier(t float64, p Params) float64 {
	u := 1 - t
	return u*u*u*p.Start +
		3*u*u*t*p.CP1 +
		3*u*t*t*p.CP2 +
		t*t*t*p.End
}

// hashUnit digests the two floats into a uniform value in [0,1).
// Same inputs always produce the same output.
func hashUnit(seed, t float64) float64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(seed))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(t))
	h.Write(buf[:])
	return float64(h.Sum64()>>11) / float64(1<<53)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
