package audio

import (
	"math"
	"sync"
)

const (
	analyzerFFTSize = 1024
	analyzerDecay   = 0.3

	// amplitudeDecay controls how fast a stroke's sample amplitude
	// falls back toward silence between Feed calls.
	amplitudeDecay = 0.92
)

// band edge fractions of the usable spectrum (log-spaced, seven bands:
// sub, bass, low-mid, mid, high-mid, treble and the running average).
var bandEdges = [7]float64{0, 1.0 / 6, 2.0 / 6, 3.0 / 6, 4.0 / 6, 5.0 / 6, 1}

// Analyzer turns raw stereo int16 frames into the seven named bands
// plus per-stroke amplitude followers. It implements Provider.
//
// The pipeline is mono mix → Hann window → radix-2 FFT → logarithmic
// banding → exponential smoothing → running-max normalization.
type Analyzer struct {
	mu sync.Mutex

	real []float64
	imag []float64
	raw  [6]float64 // smoothed unnormalized band magnitudes
	out  Bands

	// transform tables, built once for the fixed FFT size
	rev      []int
	twiddleR []float64
	twiddleI []float64
	window   []float64

	amps map[string]float64
}

// NewAnalyzer creates an analyzer ready to receive sample frames.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		real: make([]float64, analyzerFFTSize),
		imag: make([]float64, analyzerFFTSize),
		amps: make(map[string]float64),
	}
	a.buildTables()
	return a
}

// Process ingests one frame of interleaved stereo int16 samples and
// refreshes the band levels. Frames shorter than the FFT size are
// ignored.
func (a *Analyzer) Process(samples []int16) {
	if len(samples) < analyzerFFTSize {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := 0; i < analyzerFFTSize; i++ {
		idx := i * 2
		if idx+1 < len(samples) {
			a.real[i] = (float64(samples[idx]) + float64(samples[idx+1])) / 65536.0
		} else if idx < len(samples) {
			a.real[i] = float64(samples[idx]) / 32768.0
		} else {
			a.real[i] = 0
		}
		a.imag[i] = 0
		a.real[i] *= a.window[i]
	}

	a.transform()

	maxBin := analyzerFFTSize / 2
	for b := 0; b < 6; b++ {
		lo := int(math.Pow(float64(maxBin), bandEdges[b]))
		hi := int(math.Pow(float64(maxBin), bandEdges[b+1]))
		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			hi = lo + 1
		}
		if hi > maxBin {
			hi = maxBin
		}

		sum := 0.0
		count := 0
		for i := lo; i < hi; i++ {
			sum += math.Sqrt(a.real[i]*a.real[i] + a.imag[i]*a.imag[i])
			count++
		}
		var mag float64
		if count > 0 {
			mag = sum / float64(count)
		}
		a.raw[b] = a.raw[b]*analyzerDecay + mag*(1-analyzerDecay)
	}

	a.out = a.normalized()
}

// normalized scales the smoothed magnitudes to 0–1 against the current
// loudest band. Callers hold a.mu.
func (a *Analyzer) normalized() Bands {
	maxVal := 0.01
	for _, v := range a.raw {
		if v > maxVal {
			maxVal = v
		}
	}

	var n [6]float64
	avg := 0.0
	for i, v := range a.raw {
		n[i] = v / maxVal
		avg += n[i]
	}

	return Bands{
		Sub:     n[0],
		Bass:    n[1],
		LowMid:  n[2],
		Mid:     n[3],
		HighMid: n[4],
		Treble:  n[5],
		Average: avg / 6,
	}
}

// SpectralBands returns the most recent normalized band levels.
func (a *Analyzer) SpectralBands() Bands {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.out
}

// Feed records the instantaneous playback amplitude of a stroke's
// sample buffer. Levels outside [0,1] are clamped.
func (a *Analyzer) Feed(strokeID string, level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if level > a.amps[strokeID] {
		a.amps[strokeID] = level
	}
}

// StrokeAmplitude returns the decayed amplitude for a stroke, 0 when
// no buffer has ever been fed for it.
func (a *Analyzer) StrokeAmplitude(strokeID string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	v := a.amps[strokeID]
	if v == 0 {
		return 0
	}
	a.amps[strokeID] = v * amplitudeDecay
	return v
}

// Forget drops the amplitude follower for a removed stroke.
func (a *Analyzer) Forget(strokeID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.amps, strokeID)
}
