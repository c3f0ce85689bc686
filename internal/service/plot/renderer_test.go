package plot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(n int) ([]time.Time, []float64, []float64) {
	dates := make([]time.Time, n)
	actual := make([]float64, n)
	predicted := make([]float64, n)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		dates[i] = day
		day = day.AddDate(0, 0, 1)
		actual[i] = 100 + float64(i)
		predicted[i] = 100.5 + float64(i)*0.99
	}
	return dates, actual, predicted
}

func TestRenderWritesArtifacts(t *testing.T) {
	root := t.TempDir()
	r := NewRenderer(root)

	dates, actual, predicted := sampleData(60)
	arts, err := r.Render("AAPL", dates, actual, predicted)
	require.NoError(t, err)

	assert.Equal(t, "plots/AAPL/prediction_plot.png", arts.PredictionPlot)
	assert.Equal(t, "plots/AAPL/residuals_plot.png", arts.ResidualsPlot)
	assert.Equal(t, "plots/AAPL/residuals_distribution.png", arts.ResidualsDistribution)

	for _, rel := range []string{arts.PredictionPlot, arts.ResidualsPlot, arts.ResidualsDistribution} {
		info, err := os.Stat(filepath.Join(root, rel))
		require.NoError(t, err, rel)
		assert.Greater(t, info.Size(), int64(0), rel)
	}
}

func TestRenderOverwrites(t *testing.T) {
	root := t.TempDir()
	r := NewRenderer(root)

	dates, actual, predicted := sampleData(30)
	_, err := r.Render("MSFT", dates, actual, predicted)
	require.NoError(t, err)
	_, err = r.Render("MSFT", dates, actual, predicted)
	require.NoError(t, err)
}

func TestRenderMismatchedLengths(t *testing.T) {
	r := NewRenderer(t.TempDir())
	dates, actual, _ := sampleData(10)
	_, err := r.Render("AAPL", dates, actual, make([]float64, 9))
	assert.Error(t, err)
}

func TestRenderConstantResiduals(t *testing.T) {
	// Zero-variance residuals must not break the density overlay.
	root := t.TempDir()
	r := NewRenderer(root)

	dates, actual, _ := sampleData(20)
	_, err := r.Render("KO", dates, actual, actual)
	require.NoError(t, err)
}
