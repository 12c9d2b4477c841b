// Package mandel evaluates the Mandelbrot recurrence z(n+1) = z(n)² + c.
//
// The package is a pure numerical kernel: evaluation always terminates, has
// no hidden state, and for identical inputs produces bit-for-bit identical
// results.
package mandel

import "math"

// escapeRadius2 is the squared bailout radius. Once |z| exceeds 2 the orbit
// is guaranteed to diverge, so the loop compares squared magnitudes against
// 4 and never takes a square root.
const escapeRadius2 = 4.0

// A Result records the outcome of iterating a single point c.
type Result struct {
	// Escaped reports whether the orbit left the bailout radius before the
	// iteration cap was reached.
	Escaped bool

	// Iterations is the index of the update that escaped, starting at zero,
	// or the cap itself if the orbit stayed bounded. Any c with |c| > 2
	// escapes on the very first update and reports 0.
	Iterations int

	// Final is the last z computed: the first value beyond the bailout
	// radius when Escaped, otherwise the value after the capped update.
	Final complex128

	// Orbit holds z(0) = 0, z(1) = c, and so on up to and including Final.
	// It is nil unless the caller asked for it; bulk rendering skips it to
	// avoid the allocation.
	Orbit []complex128
}

// Evaluate iterates z = z² + c from z = 0 for at most maxIterations updates
// and reports whether, and how quickly, the orbit escapes.
//
// Raising maxIterations never changes the reported index of a point that
// already escaped.
func Evaluate(c complex128, maxIterations int, captureOrbit bool) Result {
	var orbit []complex128
	if captureOrbit {
		orbit = make([]complex128, 1, maxIterations+1)
	}

	var z complex128
	for n := 0; n < maxIterations; n++ {
		z = z*z + c
		if captureOrbit {
			orbit = append(orbit, z)
		}
		if real(z)*real(z)+imag(z)*imag(z) > escapeRadius2 {
			return Result{Escaped: true, Iterations: n, Final: z, Orbit: orbit}
		}
	}
	return Result{Iterations: maxIterations, Final: z, Orbit: orbit}
}

// SmoothIterations returns the continuous escape measure
//
//	iterations + 1 - log2(log2 |Final|)
//
// which removes the integer banding of the raw count and drives the smooth
// palettes. Bounded results return the cap unchanged. The measure is never
// negative; points that overshoot the radius by a huge margin clamp to 0.
func SmoothIterations(r Result) float64 {
	if !r.Escaped {
		return float64(r.Iterations)
	}
	mag2 := real(r.Final)*real(r.Final) + imag(r.Final)*imag(r.Final)
	// log2 |z| = log2(|z|²) / 2 spares the square root.
	mu := float64(r.Iterations) + 1 - math.Log2(math.Log2(mag2)/2)
	if mu < 0 {
		return 0
	}
	return mu
}
