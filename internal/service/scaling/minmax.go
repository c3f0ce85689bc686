package scaling

// Transform is a fitted, reversible min-max scaling over a price series.
// One Transform per pipeline invocation; never reused across tickers.
type Transform struct {
	Min float64
	Max float64
}

// Fit computes the min and max of values and returns the fitted transform.
// Values must be non-empty.
func Fit(values []float64) Transform {
	t := Transform{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < t.Min {
			t.Min = v
		}
		if v > t.Max {
			t.Max = v
		}
	}
	return t
}

// degenerate reports a constant series (min == max), where the naive
// formula would divide by zero.
func (t Transform) degenerate() bool {
	return t.Max == t.Min
}

// Apply maps values into [0, 1]. Out-of-range inputs extrapolate linearly
// without clamping. A constant fitted series maps everything to 0.
func (t Transform) Apply(values []float64) []float64 {
	out := make([]float64, len(values))
	if t.degenerate() {
		return out
	}
	span := t.Max - t.Min
	for i, v := range values {
		out[i] = (v - t.Min) / span
	}
	return out
}

// Invert maps scaled values back to prices. Inverse of Apply for values
// inside [min, max]; extrapolates linearly outside.
func (t Transform) Invert(values []float64) []float64 {
	out := make([]float64, len(values))
	if t.degenerate() {
		for i := range out {
			out[i] = t.Min
		}
		return out
	}
	span := t.Max - t.Min
	for i, v := range values {
		out[i] = v*span + t.Min
	}
	return out
}

// InvertOne maps a single scaled value back to a price.
func (t Transform) InvertOne(v float64) float64 {
	if t.degenerate() {
		return t.Min
	}
	return v*(t.Max-t.Min) + t.Min
}
