package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockCast/internal/domain/models"
	"StockCast/internal/service/window"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const tinyModel = `{
  "window": 3,
  "lstm": {"input": 1, "hidden": 1, "wx": [0, 0, 0, 0], "wh": [0, 0, 0, 0], "b": [0, 0, 0, 0]},
  "dense": {"w": [0], "b": 0.5}
}`

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	var notFound *models.ModelNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestLoadAndPredict(t *testing.T) {
	m, err := Load(writeArtifact(t, tinyModel))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Window())

	// Zero recurrent weights and a zero dense row reduce the network to its
	// dense bias regardless of input.
	ws := []window.Window{
		{Values: []float64{0.1, 0.2, 0.3}},
		{Values: []float64{0.9, 0.8, 0.7}},
	}
	preds := m.Predict(ws)
	require.Len(t, preds, 2)
	assert.InDelta(t, 0.5, preds[0], 1e-12)
	assert.InDelta(t, 0.5, preds[1], 1e-12)
}

func TestPredictDeterministic(t *testing.T) {
	body := `{
  "window": 4,
  "lstm": {"input": 1, "hidden": 2,
    "wx": [0.1, -0.2, 0.3, 0.05, -0.1, 0.2, 0.15, -0.05],
    "wh": [0.01, 0.02, -0.01, 0.03, 0.02, -0.02, 0.01, 0.04,
           -0.03, 0.01, 0.02, -0.01, 0.05, 0.01, -0.02, 0.03],
    "b": [0.01, 0.02, 0.03, 0.04, -0.01, -0.02, -0.03, -0.04]},
  "dense": {"w": [0.5, -0.25], "b": 0.1}
}`
	m, err := Load(writeArtifact(t, body))
	require.NoError(t, err)

	in := []window.Window{{Values: []float64{0.2, 0.4, 0.6, 0.8}}}
	a := m.Predict(in)
	b := m.Predict(in)
	assert.Equal(t, a, b)
}

func TestLoadRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"short wx": `{"window": 3, "lstm": {"input": 1, "hidden": 1, "wx": [0], "wh": [0,0,0,0], "b": [0,0,0,0]}, "dense": {"w": [0], "b": 0}}`,
		"no window": `{"lstm": {"input": 1, "hidden": 1, "wx": [0,0,0,0], "wh": [0,0,0,0], "b": [0,0,0,0]}, "dense": {"w": [0], "b": 0}}`,
		"garbage":   `not json`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeArtifact(t, body))
			assert.Error(t, err)
		})
	}
}

func TestExists(t *testing.T) {
	path := writeArtifact(t, tinyModel)
	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Join(t.TempDir(), "missing.json")))
}

func TestCacheLoadOnce(t *testing.T) {
	path := writeArtifact(t, tinyModel)
	c := NewCache()

	m1, err := c.Load(path)
	require.NoError(t, err)
	m2, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
}

func TestCacheMissingNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	c := NewCache()

	_, err := c.Load(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(tinyModel), 0o644))
	m, err := c.Load(path)
	require.NoError(t, err)
	assert.NotNil(t, m)
}
