package window

import (
	"errors"
	"testing"

	"StockCast/internal/domain/models"
)

func seq(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func TestTrainingCountAndAlignment(t *testing.T) {
	const L, W = 150, 100
	ws := Training(seq(L), W)
	if len(ws) != L-W {
		t.Fatalf("expected %d windows, got %d", L-W, len(ws))
	}
	for i, w := range ws {
		if len(w.Values) != W {
			t.Fatalf("window %d has length %d", i, len(w.Values))
		}
		if w.Values[0] != float64(i) {
			t.Fatalf("window %d starts at %v", i, w.Values[0])
		}
		if w.Target != float64(i+W) {
			t.Fatalf("window %d targets %v, want %v", i, w.Target, float64(i+W))
		}
		if !w.HasTarget {
			t.Fatalf("training window %d missing target", i)
		}
	}
}

func TestTrainingTooShort(t *testing.T) {
	if ws := Training(seq(100), 100); len(ws) != 0 {
		t.Fatalf("expected no windows, got %d", len(ws))
	}
	if ws := Training(seq(5), 100); len(ws) != 0 {
		t.Fatalf("expected no windows, got %d", len(ws))
	}
}

func TestTrainingSingleWindow(t *testing.T) {
	ws := Training(seq(101), 100)
	if len(ws) != 1 {
		t.Fatalf("expected exactly 1 window, got %d", len(ws))
	}
	if ws[0].Target != 100 {
		t.Fatalf("unexpected target %v", ws[0].Target)
	}
}

func TestInference(t *testing.T) {
	w, err := Inference(seq(120), 100, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Values) != 100 {
		t.Fatalf("unexpected length %d", len(w.Values))
	}
	if w.Values[0] != 20 || w.Values[99] != 119 {
		t.Fatalf("window not taken from tail: %v..%v", w.Values[0], w.Values[99])
	}
	if w.HasTarget {
		t.Fatal("inference window must not carry a target")
	}
}

func TestInferenceInsufficientData(t *testing.T) {
	_, err := Inference(seq(99), 100, "AAPL")
	var insufficientErr *models.InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficientErr.Have != 99 || insufficientErr.Need != 100 {
		t.Fatalf("unexpected error detail: %+v", insufficientErr)
	}
}
