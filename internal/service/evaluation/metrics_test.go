package evaluation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockCast/internal/domain/models"
)

func TestComputePerfectPrediction(t *testing.T) {
	xs := []float64{100, 105, 98, 111}
	got, err := Compute(xs, xs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.MSE)
	assert.Equal(t, 0.0, got.RMSE)
	assert.Equal(t, 1.0, got.R2)
	assert.Equal(t, 0.0, got.MAE)
	assert.Equal(t, 0.0, got.MAPE)
}

func TestComputeKnownValues(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	predicted := []float64{1, 2, 3, 6}
	got, err := Compute(actual, predicted)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.MSE)  // (0+0+0+4)/4
	assert.Equal(t, 1.0, got.RMSE)
	assert.Equal(t, 0.5, got.MAE) // 2/4
	// SS_tot = 5, SS_res = 4 -> r2 = 0.2
	assert.Equal(t, 0.2, got.R2)
	assert.Equal(t, 0.125, got.MAPE) // (2/4)/4
}

func TestComputeConstantActual(t *testing.T) {
	got, err := Compute([]float64{5, 5, 5}, []float64{4, 5, 6})
	require.NoError(t, err)
	// Zero total variance: R2 defined as 1.0 rather than NaN.
	assert.Equal(t, 1.0, got.R2)
}

func TestComputeDimensionMismatch(t *testing.T) {
	_, err := Compute(make([]float64, 5), make([]float64, 6))
	var mismatch *models.DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 5, mismatch.ActualLen)
	assert.Equal(t, 6, mismatch.PredictedLen)
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil, nil)
	var mismatch *models.DimensionMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestComputeRounding(t *testing.T) {
	got, err := Compute([]float64{3}, []float64{2})
	require.NoError(t, err)
	assert.Equal(t, 0.3333, got.MAPE)
}

func TestResiduals(t *testing.T) {
	got := Residuals([]float64{3, 1}, []float64{2, 4})
	assert.Equal(t, []float64{1, -3}, got)
}
