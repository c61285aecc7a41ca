// Package scene provides the simulation data model: strokes made of
// physically simulated points, spring connections between them, and
// the world value that owns both.
package scene

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/modulation"
)

// Point is one simulated node on a stroke. Base is the anchor the
// elasticity spring pulls toward; it is fixed at creation.
type Point struct {
	Pos      geom.Vec2 `json:"pos"`
	Vel      geom.Vec2 `json:"vel"`
	Base     geom.Vec2 `json:"base"`
	Pressure float64   `json:"pressure"` // 0–1 draw pressure
}

// Stroke is an ordered chain of points plus the parameter set that
// governs their motion.
type Stroke struct {
	ID     string  `json:"id"`
	Index  int     `json:"index"` // creation order
	Points []Point `json:"points"`

	// Center is recomputed every frame; OriginCenter is captured once
	// when drawing finishes and drives displacement effects.
	Center       geom.Vec2 `json:"center"`
	OriginCenter geom.Vec2 `json:"originCenter"`

	Params Params                        `json:"params"`
	Mods   map[string]*modulation.Config `json:"mods,omitempty"`

	// Seed desynchronizes the random source across strokes;
	// PhaseOffset does the same for periodic wiggle.
	Seed        float64 `json:"seed"`
	PhaseOffset float64 `json:"phaseOffset"`

	// Transient multi-selection slot, assigned while selected.
	SelectionIndex int `json:"-"`
	SelectionTotal int `json:"-"`
}

// NewStroke starts a stroke at the given position. The first point is
// appended immediately so a stroke is never empty.
func NewStroke(index int, start geom.Vec2, pressure float64, params Params) *Stroke {
	s := &Stroke{
		ID:          uuid.NewString(),
		Index:       index,
		Params:      params,
		Mods:        make(map[string]*modulation.Config),
		Seed:        rand.Float64(),
		PhaseOffset: rand.Float64() * 2 * math.Pi,
		Center:      start,
	}
	s.AppendPoint(start, pressure)
	return s
}

// AppendPoint adds a point during drawing. The anchor is the position
// at creation time.
func (s *Stroke) AppendPoint(pos geom.Vec2, pressure float64) {
	if pressure < 0 {
		pressure = 0
	}
	if pressure > 1 {
		pressure = 1
	}
	s.Points = append(s.Points, Point{Pos: pos, Base: pos, Pressure: pressure})
}

// Finish captures the origin center at draw completion.
func (s *Stroke) Finish() {
	s.UpdateCenter()
	s.OriginCenter = s.Center
}

// UpdateCenter recomputes the running center from current positions.
func (s *Stroke) UpdateCenter() {
	if len(s.Points) == 0 {
		return
	}
	var sum geom.Vec2
	for i := range s.Points {
		sum = sum.Add(s.Points[i].Pos)
	}
	s.Center = sum.Scale(1 / float64(len(s.Points)))
}

// AvgPressure returns the mean draw pressure across the stroke.
func (s *Stroke) AvgPressure() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	total := 0.0
	for i := range s.Points {
		total += s.Points[i].Pressure
	}
	return total / float64(len(s.Points))
}

// SetMod attaches (or replaces) the modulation for a parameter key.
func (s *Stroke) SetMod(key string, cfg modulation.Config) {
	if s.Mods == nil {
		s.Mods = make(map[string]*modulation.Config)
	}
	c := cfg
	s.Mods[key] = &c
}

// ClearMod removes the modulation for a parameter key, restoring the
// fixed base value.
func (s *Stroke) ClearMod(key string) {
	delete(s.Mods, key)
}

// Mod returns the modulation config for a key, or nil when the
// parameter is unmodulated.
func (s *Stroke) Mod(key string) *modulation.Config {
	return s.Mods[key]
}

// Clone returns a deep copy sharing no mutable state with s.
func (s *Stroke) Clone() *Stroke {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	c.Mods = make(map[string]*modulation.Config, len(s.Mods))
	for k, v := range s.Mods {
		cfg := *v
		c.Mods[k] = &cfg
	}
	return &c
}
