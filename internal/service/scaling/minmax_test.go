package scaling

import (
	"math"
	"testing"
)

func TestFitApplyRange(t *testing.T) {
	xs := []float64{10, 20, 30, 40}
	tr := Fit(xs)
	if tr.Min != 10 || tr.Max != 40 {
		t.Fatalf("unexpected fit: %+v", tr)
	}
	scaled := tr.Apply(xs)
	if scaled[0] != 0 || scaled[3] != 1 {
		t.Fatalf("expected endpoints 0 and 1, got %v", scaled)
	}
}

func TestRoundTrip(t *testing.T) {
	xs := []float64{101.5, 99.2, 150.75, 133.0, 120.4}
	tr := Fit(xs)
	back := tr.Invert(tr.Apply(xs))
	for i := range xs {
		if math.Abs(back[i]-xs[i]) > 1e-9 {
			t.Fatalf("round trip mismatch at %d: %v != %v", i, back[i], xs[i])
		}
	}
}

func TestConstantSeries(t *testing.T) {
	xs := []float64{42, 42, 42}
	tr := Fit(xs)
	scaled := tr.Apply(xs)
	for i, v := range scaled {
		if v != 0 {
			t.Fatalf("expected 0 at %d, got %v", i, v)
		}
	}
	back := tr.Invert(scaled)
	for i, v := range back {
		if v != 42 {
			t.Fatalf("expected 42 at %d, got %v", i, v)
		}
	}
	if got := tr.InvertOne(0); got != 42 {
		t.Fatalf("InvertOne(0) = %v, want 42", got)
	}
}

func TestExtrapolation(t *testing.T) {
	tr := Fit([]float64{0, 100})
	out := tr.Apply([]float64{150, -50})
	if out[0] != 1.5 || out[1] != -0.5 {
		t.Fatalf("expected linear extrapolation, got %v", out)
	}
	if got := tr.InvertOne(1.5); got != 150 {
		t.Fatalf("InvertOne(1.5) = %v, want 150", got)
	}
}
