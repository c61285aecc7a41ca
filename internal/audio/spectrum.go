package audio

import "math"

// buildTables precomputes the bit-reversal permutation, the twiddle
// factors and the Hann window for the fixed transform size, so the
// per-frame path stays trig-free.
func (a *Analyzer) buildTables() {
	n := analyzerFFTSize

	a.rev = make([]int, n)
	for i := 1; i < n; i++ {
		a.rev[i] = a.rev[i>>1]>>1 | (i&1)*(n>>1)
	}

	a.twiddleR = make([]float64, n/2)
	a.twiddleI = make([]float64, n/2)
	for j := range a.twiddleR {
		angle := -2 * math.Pi * float64(j) / float64(n)
		a.twiddleR[j] = math.Cos(angle)
		a.twiddleI[j] = math.Sin(angle)
	}

	a.window = make([]float64, n)
	for i := range a.window {
		a.window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
}

// transform runs an in-place radix-2 FFT over the analyzer's scratch
// buffers. The buffers are exactly analyzerFFTSize long, matching the
// tables from buildTables.
func (a *Analyzer) transform() {
	n := analyzerFFTSize

	for i, r := range a.rev {
		if i < r {
			a.real[i], a.real[r] = a.real[r], a.real[i]
			a.imag[i], a.imag[r] = a.imag[r], a.imag[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		stride := n / size
		for base := 0; base < n; base += size {
			for k := 0; k < half; k++ {
				wr := a.twiddleR[k*stride]
				wi := a.twiddleI[k*stride]
				p := base + k
				q := p + half
				tr := wr*a.real[q] - wi*a.imag[q]
				ti := wr*a.imag[q] + wi*a.real[q]
				a.real[q] = a.real[p] - tr
				a.imag[q] = a.imag[p] - ti
				a.real[p] += tr
				a.imag[p] += ti
			}
		}
	}
}
