// Package input carries pointer state and the global-tool descriptor
// into the engine. Raw event capture lives in the host application;
// this layer only smooths and describes.
package input

import (
	"github.com/charmbracelet/harmonica"

	"github.com/talgya/strokesim/internal/geom"
)

// Pointer is the cursor as the engine sees it. Position is spring
// smoothed so force fields do not jump when the OS delivers coarse
// events.
type Pointer struct {
	raw     geom.Vec2
	pos     geom.Vec2
	vel     geom.Vec2
	spring  harmonica.Spring
	Pressed bool
	// Pressure is the draw pressure in [0,1]; hosts without pressure
	// hardware derive it from pointer speed.
	Pressure float64
	// Active is false until the first Move, so an untouched canvas
	// feels no cursor forces.
	Active bool
}

// NewPointer creates a pointer smoothed for the given frame rate.
func NewPointer(fps int) *Pointer {
	return &Pointer{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9),
	}
}

// Move records a new raw pointer position.
func (p *Pointer) Move(pos geom.Vec2) {
	if !p.Active {
		// First contact snaps instead of springing across the canvas.
		p.pos = pos
		p.Active = true
	}
	p.raw = pos
}

// Step advances the smoothing springs one frame.
func (p *Pointer) Step() {
	if !p.Active {
		return
	}
	p.pos.X, p.vel.X = p.spring.Update(p.pos.X, p.vel.X, p.raw.X)
	p.pos.Y, p.vel.Y = p.spring.Update(p.pos.Y, p.vel.Y, p.raw.Y)
}

// Position returns the smoothed cursor position.
func (p *Pointer) Position() geom.Vec2 {
	return p.pos
}

// ToolKind selects the scene-wide cursor force.
type ToolKind uint8

const (
	ToolNone ToolKind = iota
	ToolRepulse
	ToolAttract
	ToolTurbulence // simplex-noise flow field around the cursor
)

// TriggerMode gates when a tool applies force.
type TriggerMode uint8

const (
	TriggerAlways TriggerMode = iota
	TriggerWhilePressed
)

// Tool describes the active global tool.
type Tool struct {
	Kind     ToolKind
	Radius   float64
	Strength float64
	Falloff  float64
	Trigger  TriggerMode
}

// Engaged reports whether the tool should apply force right now.
func (t Tool) Engaged(pointer *Pointer) bool {
	if t.Kind == ToolNone || pointer == nil || !pointer.Active {
		return false
	}
	if t.Trigger == TriggerWhilePressed && !pointer.Pressed {
		return false
	}
	return true
}
