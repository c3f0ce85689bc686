package util

import (
	"testing"
	"time"
)

func TestNextBusinessDayFriday(t *testing.T) {
	// 2025-01-03 is a Friday
	friday := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	got := NextBusinessDay(friday)
	want := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // Monday
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextBusinessDayMidweek(t *testing.T) {
	tuesday := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	got := NextBusinessDay(tuesday)
	if got.Weekday() != time.Wednesday {
		t.Fatalf("expected Wednesday, got %v", got.Weekday())
	}
}

func TestNextBusinessDaySaturday(t *testing.T) {
	saturday := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	got := NextBusinessDay(saturday)
	if got.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %v", got.Weekday())
	}
}

func TestRound4(t *testing.T) {
	if got := Round4(3.141592); got != 3.1416 {
		t.Fatalf("unexpected %v", got)
	}
	if got := Round4(2.0); got != 2.0 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 10, 10, 15, 4, 5, 0, time.UTC)
	if got := FormatDate(d); got != "2024-10-10" {
		t.Fatalf("unexpected %q", got)
	}
}
