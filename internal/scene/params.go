package scene

// Parameter keys used in modulation maps. These are the stable names
// presets are saved with.
const (
	ParamMass            = "mass"
	ParamFriction        = "friction"
	ParamTension         = "tension"
	ParamWiggleAmplitude = "wiggleAmplitude"
	ParamWiggleFrequency = "wiggleFrequency"
	ParamWaveSpeed       = "waveSpeed"
	ParamMouseForce      = "mouseForce"
	ParamMouseRadius     = "mouseRadius"
	ParamMouseFalloff    = "mouseFalloff"
	ParamViscosity       = "viscosity"
	ParamElasticity      = "elasticity"
	ParamGravityX        = "gravityX"
	ParamGravityY        = "gravityY"
	ParamMaxDisplacement = "maxDisplacement"

	ParamSwarmAlignment  = "swarmAlignment"
	ParamSwarmCohesion   = "swarmCohesion"
	ParamSwarmSeparation = "swarmSeparation"

	ParamBondStiffness = "bondStiffness"
	ParamBondBreaking  = "bondBreaking"
	ParamBondBias      = "bondBias"
	ParamBondInfluence = "bondInfluence"
	ParamBondFalloff   = "bondFalloff"
)

// Params holds a stroke's base physics values. Any of the named fields
// can be overridden per frame by an entry in Stroke.Mods; absent an
// entry the base value is used as-is.
type Params struct {
	Mass            float64 `json:"mass"`
	Friction        float64 `json:"friction"`
	Tension         float64 `json:"tension"`
	WiggleAmplitude float64 `json:"wiggleAmplitude"`
	WiggleFrequency float64 `json:"wiggleFrequency"`
	WaveSpeed       float64 `json:"waveSpeed"`
	MouseForce      float64 `json:"mouseForce"` // >0 repels, <0 attracts
	MouseRadius     float64 `json:"mouseRadius"`
	MouseFalloff    float64 `json:"mouseFalloff"`
	Viscosity       float64 `json:"viscosity"`
	Elasticity      float64 `json:"elasticity"`
	GravityX        float64 `json:"gravityX"`
	GravityY        float64 `json:"gravityY"`
	MaxDisplacement float64 `json:"maxDisplacement"` // 0 disables the clamp

	// Swarm behavior.
	SwarmAlignment   float64 `json:"swarmAlignment"`
	SwarmCohesion    float64 `json:"swarmCohesion"`
	SwarmSeparation  float64 `json:"swarmSeparation"`
	NeighborRadius   float64 `json:"neighborRadius"`
	CursorInfluence  float64 `json:"cursorInfluence"` // 0 always on, 1 only near pointer
	AudioSensitivity float64 `json:"audioSensitivity"`
	AudioToWiggle    bool    `json:"audioToWiggle"`
}

// DefaultParams returns a stable, gently animated stroke.
func DefaultParams() Params {
	return Params{
		Mass:             1.0,
		Friction:         0.92,
		Elasticity:       0.05,
		WiggleFrequency:  0.35,
		WaveSpeed:        2.0,
		MouseRadius:      120,
		MouseFalloff:     2.0,
		MaxDisplacement:  0,
		NeighborRadius:   200,
		AudioSensitivity: 1.0,
	}
}
