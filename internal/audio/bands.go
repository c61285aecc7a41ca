// Package audio exposes the spectral view of whatever sound source the
// host application captures. The engine only ever sees normalized band
// levels and per-stroke amplitudes; capture itself lives outside.
package audio

// Bands holds the seven named spectral levels, each in [0,1].
type Bands struct {
	Sub     float64 `json:"sub"`
	Bass    float64 `json:"bass"`
	LowMid  float64 `json:"lowMid"`
	Mid     float64 `json:"mid"`
	HighMid float64 `json:"highMid"`
	Treble  float64 `json:"treble"`
	Average float64 `json:"average"`
}

// Provider is what the simulation consumes. A silent scene can pass
// the zero-value Silence provider.
type Provider interface {
	// SpectralBands returns the current normalized band levels.
	SpectralBands() Bands
	// StrokeAmplitude returns the playback amplitude in [0,1] of the
	// sample buffer assigned to the given stroke, or 0 when none is.
	StrokeAmplitude(strokeID string) float64
}

// Silence is a Provider that always reports zero levels.
type Silence struct{}

func (Silence) SpectralBands() Bands { return Bands{} }

func (Silence) StrokeAmplitude(strokeID string) float64 { return 0 }
