package mandel

import (
	"github.com/google/go-cmp/cmp"
	"math/cmplx"
	"testing"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestEvaluateEscapesImmediatelyOutsideRadius(t *testing.T) {
	// The first update sets z = c, so any |c| > 2 escapes at index 0.
	for _, c := range []complex128{
		3,
		-3,
		2.5i,
		complex(2, 2),
		complex(-1.9, -1.2),
	} {
		if cmplx.Abs(c) <= 2 {
			t.Fatalf("test point %v is not outside the bailout radius", c)
		}
		r := Evaluate(c, 50, false)
		if !r.Escaped {
			t.Errorf("Evaluate(%v) did not escape", c)
		}
		if r.Iterations != 0 {
			t.Errorf("Evaluate(%v) escaped at index %d, want 0", c, r.Iterations)
		}
		if r.Final != c {
			t.Errorf("Evaluate(%v) final z = %v, want c itself", c, r.Final)
		}
	}
}

func TestEvaluateBoundedPoints(t *testing.T) {
	// 0 is a fixed point and -1 a 2-cycle; neither ever escapes.
	for _, c := range []complex128{0, -1} {
		for _, limit := range []int{1, 10, 500, 5000} {
			r := Evaluate(c, limit, false)
			if r.Escaped {
				t.Errorf("Evaluate(%v, %d) escaped at %d", c, limit, r.Iterations)
			}
			if r.Iterations != limit {
				t.Errorf("Evaluate(%v, %d) reported %d iterations, want the cap", c, limit, r.Iterations)
			}
		}
	}
}

func TestEvaluatePeriodicOrbit(t *testing.T) {
	// c = -1 cycles 0, -1, 0, -1, ...
	r := Evaluate(-1, 6, true)
	diff(t, []complex128{0, -1, 0, -1, 0, -1, 0}, r.Orbit)
}

func TestEvaluateOrbitShape(t *testing.T) {
	c := complex(0.25, -0.3)
	r := Evaluate(c, 20, true)
	if len(r.Orbit) < 2 {
		t.Fatalf("orbit has %d points, want at least z(0) and z(1)", len(r.Orbit))
	}
	if r.Orbit[0] != 0 {
		t.Errorf("orbit starts at %v, want 0", r.Orbit[0])
	}
	if r.Orbit[1] != c {
		t.Errorf("orbit index 1 is %v, want c = %v", r.Orbit[1], c)
	}
	if last := r.Orbit[len(r.Orbit)-1]; last != r.Final {
		t.Errorf("orbit ends at %v, want Final = %v", last, r.Final)
	}
}

func TestEvaluateOrbitOnlyOnRequest(t *testing.T) {
	if r := Evaluate(complex(0.1, 0.1), 50, false); r.Orbit != nil {
		t.Errorf("orbit materialized without request: %d points", len(r.Orbit))
	}
}

func TestEvaluateCapMonotonicity(t *testing.T) {
	// Just beyond the cardioid cusp at 0.25; escapes slowly (~30 updates).
	c := complex(0.26, 0)
	base := Evaluate(c, 100, false)
	if !base.Escaped {
		t.Fatalf("Evaluate(%v, 100) did not escape", c)
	}
	if base.Iterations == 0 {
		t.Fatalf("Evaluate(%v, 100) escaped immediately; want a slow escape", c)
	}
	for _, limit := range []int{base.Iterations + 1, 200, 1000, 10000} {
		r := Evaluate(c, limit, false)
		if !r.Escaped || r.Iterations != base.Iterations {
			t.Errorf("cap %d: escaped=%v at %d, want escape at %d",
				limit, r.Escaped, r.Iterations, base.Iterations)
		}
	}
}

func TestEvaluateConjugateSymmetry(t *testing.T) {
	for _, c := range []complex128{
		complex(-0.75, 0.1),
		complex(0.3, 0.6),
		complex(-1.2, 0.3),
		complex(0.26, 0.005),
		complex(-0.743643, 0.131825),
	} {
		a := Evaluate(c, 500, false)
		b := Evaluate(cmplx.Conj(c), 500, false)
		if a.Escaped != b.Escaped || a.Iterations != b.Iterations {
			t.Errorf("asymmetry at %v: (%v, %d) vs conjugate (%v, %d)",
				c, a.Escaped, a.Iterations, b.Escaped, b.Iterations)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	c := complex(-0.743643, 0.131825)
	first := Evaluate(c, 1000, true)
	for i := 0; i < 3; i++ {
		diff(t, first, Evaluate(c, 1000, true))
	}
}

func TestSmoothIterations(t *testing.T) {
	bounded := Evaluate(0, 200, false)
	if got := SmoothIterations(bounded); got != 200 {
		t.Errorf("bounded point smoothed to %v, want the cap", got)
	}

	escaped := Evaluate(complex(0.26, 0), 100, false)
	mu := SmoothIterations(escaped)
	if mu < 0 || mu > float64(escaped.Iterations)+1 {
		t.Errorf("smooth measure %v outside [0, %d]", mu, escaped.Iterations+1)
	}

	// Enormous overshoot clamps rather than going negative.
	far := Evaluate(complex(1e6, 0), 10, false)
	if got := SmoothIterations(far); got < 0 {
		t.Errorf("smooth measure %v is negative", got)
	}
}
