package scene

import (
	"github.com/google/uuid"

	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/modulation"
)

// Endpoint names one point on one stroke. It carries the stroke ID
// rather than a pointer so a removed stroke leaves a dangling but
// safely detectable reference.
type Endpoint struct {
	StrokeID   string `json:"strokeId"`
	PointIndex int    `json:"pointIndex"`
}

// Connection is a spring bond between two points, usually on different
// strokes. A connection is either alive or removed; removal is
// terminal.
type Connection struct {
	ID   string   `json:"id"`
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`

	// RestLength is usually 0, meaning "pull the points together".
	RestLength float64 `json:"restLength"`
	Stiffness  float64 `json:"stiffness"`

	// BreakingForce 0 disables breakage; otherwise the bond snaps when
	// |stretch| exceeds BreakingForce times the break factor.
	BreakingForce float64 `json:"breakingForce"`

	// Bias in [0,1] distributes the corrective force: 0 moves only
	// From, 1 moves only To.
	Bias float64 `json:"bias"`

	// Influence neighbors on each side of each endpoint receive an
	// attenuated copy of the force; Falloff in [0,1] sets how much of
	// the decay curve applies.
	Influence int     `json:"influence"`
	Falloff   float64 `json:"falloff"`

	// DecayEasing shapes the neighbor attenuation. Fixed, not
	// modulatable.
	DecayEasing easing.Kind `json:"decayEasing"`

	Mods map[string]*modulation.Config `json:"mods,omitempty"`
}

// NewConnection bonds two endpoints with sensible spring defaults.
func NewConnection(from, to Endpoint) *Connection {
	return &Connection{
		ID:          uuid.NewString(),
		From:        from,
		To:          to,
		Stiffness:   0.5,
		Bias:        0.5,
		Influence:   3,
		Falloff:     0.6,
		DecayEasing: easing.QuadOut,
		Mods:        make(map[string]*modulation.Config),
	}
}

// Mod returns the modulation config for a bond parameter key, or nil.
func (c *Connection) Mod(key string) *modulation.Config {
	return c.Mods[key]
}

// Clone returns a deep copy of the connection.
func (c *Connection) Clone() *Connection {
	cl := *c
	cl.Mods = make(map[string]*modulation.Config, len(c.Mods))
	for k, v := range c.Mods {
		cfg := *v
		cl.Mods[k] = &cfg
	}
	return &cl
}
