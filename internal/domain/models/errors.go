package models

import "fmt"

// NoDataError indicates the provider returned zero observations for a
// ticker/range (invalid ticker, delisted, or no trading days in range).
type NoDataError struct {
	Ticker string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data found for ticker: %s", e.Ticker)
}

// InsufficientDataError indicates fewer observations were available than the
// model window requires. Detected before any model call.
type InsufficientDataError struct {
	Ticker string
	Have   int
	Need   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: have %d observations, need %d", e.Ticker, e.Have, e.Need)
}

// ModelNotFoundError indicates the model artifact is missing at the
// configured path.
type ModelNotFoundError struct {
	Path string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model artifact not found at %s", e.Path)
}

// DimensionMismatchError indicates actual/predicted sequences of different
// lengths reached the metrics engine. A pipeline bug, never a caller fault.
type DimensionMismatchError struct {
	ActualLen    int
	PredictedLen int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: actual has %d values, predicted has %d", e.ActualLen, e.PredictedLen)
}

// PipelineError wraps an unclassified failure with the stage it occurred in.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
