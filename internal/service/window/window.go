package window

import (
	"StockCast/internal/domain/models"
)

// Window is a fixed-length contiguous slice of scaled values, optionally
// paired with the scaled value that immediately follows it.
type Window struct {
	Values []float64
	Target float64
	// HasTarget is false for the inference window built from the series tail.
	HasTarget bool
}

// Training slices scaled into all overlapping windows with aligned targets,
// in chronological order. Window i covers indices [i, i+length) and targets
// index i+length, so a series of length L yields max(0, L-length) windows.
func Training(scaled []float64, length int) []Window {
	n := len(scaled) - length
	if n <= 0 {
		return nil
	}
	ws := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		ws = append(ws, Window{
			Values:    scaled[i : i+length],
			Target:    scaled[i+length],
			HasTarget: true,
		})
	}
	return ws
}

// Inference builds the single window from the last `length` values, with no
// target. Reported as InsufficientDataError before any model call when the
// series is too short.
func Inference(scaled []float64, length int, ticker string) (Window, error) {
	if len(scaled) < length {
		return Window{}, &models.InsufficientDataError{Ticker: ticker, Have: len(scaled), Need: length}
	}
	return Window{Values: scaled[len(scaled)-length:]}, nil
}
