package models

import "time"

// PricePoint is a single daily observation.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closing prices, strictly
// ascending by date. Market closures are naturally absent; the series is
// immutable once fetched.
type PriceSeries []PricePoint

// Closes returns the closing prices in chronological order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Dates returns the observation dates in chronological order.
func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Last returns the most recent observation. The series must be non-empty.
func (s PriceSeries) Last() PricePoint {
	return s[len(s)-1]
}
