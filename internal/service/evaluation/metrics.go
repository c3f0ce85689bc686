package evaluation

import (
	"math"

	"StockCast/internal/domain/models"
	"StockCast/pkg/util"
)

// Compute calculates regression-quality statistics between aligned actual
// and predicted sequences. Inputs must be equal-length and non-empty;
// returns *models.DimensionMismatchError otherwise. All values rounded to
// 4 decimal places for presentation.
func Compute(actual, predicted []float64) (models.MetricsSummary, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return models.MetricsSummary{}, &models.DimensionMismatchError{
			ActualLen:    len(actual),
			PredictedLen: len(predicted),
		}
	}

	n := float64(len(actual))

	var mean float64
	for _, a := range actual {
		mean += a
	}
	mean /= n

	var ssRes, ssTot, absErr, pctErr float64
	for i, a := range actual {
		d := a - predicted[i]
		ssRes += d * d
		ssTot += (a - mean) * (a - mean)
		absErr += math.Abs(d)
		if a != 0 {
			pctErr += math.Abs(d / a)
		}
	}

	mse := ssRes / n
	// A constant actual series has zero total variance; define R2 as 1
	// rather than NaN.
	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}

	return models.MetricsSummary{
		MSE:  util.Round4(mse),
		RMSE: util.Round4(math.Sqrt(mse)),
		R2:   util.Round4(r2),
		MAE:  util.Round4(absErr / n),
		MAPE: util.Round4(pctErr / n),
	}, nil
}

// Residuals returns actual - predicted, aligned by index. Lengths must
// already be equal.
func Residuals(actual, predicted []float64) []float64 {
	out := make([]float64, len(actual))
	for i := range actual {
		out[i] = actual[i] - predicted[i]
	}
	return out
}
