package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"StockCast/internal/domain/models"
	"StockCast/internal/service/window"
)

// Model is a pretrained LSTM sequence-regression model evaluated in-process.
// Immutable after Load, safe for concurrent readers. The contract is shape
// only: a fixed-length scaled window in, a single scaled scalar out.
type Model struct {
	window int
	input  int
	hidden int
	// Gate order within the stacked weight rows is i, f, g, o.
	wx    []float64 // 4H x input
	wh    []float64 // 4H x hidden
	bias  []float64 // 4H
	dense []float64 // hidden
	denseB float64
}

type weightsFile struct {
	Window int `json:"window"`
	LSTM   struct {
		Input  int       `json:"input"`
		Hidden int       `json:"hidden"`
		Wx     []float64 `json:"wx"`
		Wh     []float64 `json:"wh"`
		B      []float64 `json:"b"`
	} `json:"lstm"`
	Dense struct {
		W []float64 `json:"w"`
		B float64   `json:"b"`
	} `json:"dense"`
}

// Exists reports whether a model artifact is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads and validates a model artifact. Returns
// *models.ModelNotFoundError when nothing exists at path.
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.ModelNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read model: %w", err)
	}

	var wf weightsFile
	if err := json.Unmarshal(b, &wf); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	m := &Model{
		window: wf.Window,
		input:  wf.LSTM.Input,
		hidden: wf.LSTM.Hidden,
		wx:     wf.LSTM.Wx,
		wh:     wf.LSTM.Wh,
		bias:   wf.LSTM.B,
		dense:  wf.Dense.W,
		denseB: wf.Dense.B,
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

func (m *Model) validate() error {
	if m.window < 1 {
		return fmt.Errorf("invalid window %d", m.window)
	}
	if m.input != 1 {
		return fmt.Errorf("expected univariate input, got %d features", m.input)
	}
	h := m.hidden
	if h < 1 {
		return fmt.Errorf("invalid hidden size %d", h)
	}
	if len(m.wx) != 4*h*m.input {
		return fmt.Errorf("wx has %d weights, want %d", len(m.wx), 4*h*m.input)
	}
	if len(m.wh) != 4*h*h {
		return fmt.Errorf("wh has %d weights, want %d", len(m.wh), 4*h*h)
	}
	if len(m.bias) != 4*h {
		return fmt.Errorf("bias has %d weights, want %d", len(m.bias), 4*h)
	}
	if len(m.dense) != h {
		return fmt.Errorf("dense has %d weights, want %d", len(m.dense), h)
	}
	return nil
}

// Window returns the input sequence length the model was trained with.
func (m *Model) Window() int {
	return m.window
}

// Predict evaluates every window and returns one scaled prediction per
// window, order preserving.
func (m *Model) Predict(windows []window.Window) []float64 {
	out := make([]float64, len(windows))
	for i, w := range windows {
		out[i] = m.forward(w.Values)
	}
	return out
}

// forward runs the LSTM over one univariate sequence and applies the dense
// head to the final hidden state.
func (m *Model) forward(xs []float64) float64 {
	h := m.hidden
	hs := make([]float64, h)
	cs := make([]float64, h)
	gates := make([]float64, 4*h)

	for _, x := range xs {
		for j := 0; j < 4*h; j++ {
			acc := m.bias[j] + m.wx[j]*x
			row := m.wh[j*h : (j+1)*h]
			for k, hk := range hs {
				acc += row[k] * hk
			}
			gates[j] = acc
		}
		for j := 0; j < h; j++ {
			i := sigmoid(gates[j])
			f := sigmoid(gates[h+j])
			g := math.Tanh(gates[2*h+j])
			o := sigmoid(gates[3*h+j])
			cs[j] = f*cs[j] + i*g
			hs[j] = o * math.Tanh(cs[j])
		}
	}

	y := m.denseB
	for j, w := range m.dense {
		y += w * hs[j]
	}
	return y
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
