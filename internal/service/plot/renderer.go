package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"StockCast/internal/domain/models"
)

const (
	predictionPlotName   = "prediction_plot.png"
	residualsPlotName    = "residuals_plot.png"
	distributionPlotName = "residuals_distribution.png"
)

var (
	actualColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	predictedColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	residualColor  = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	histColor      = color.RGBA{R: 0, G: 128, B: 128, A: 160}
)

// Renderer writes diagnostic plot artifacts under a media root. Artifacts
// are idempotent per ticker: re-running overwrites, last writer wins.
type Renderer struct {
	root string
}

func NewRenderer(mediaRoot string) *Renderer {
	return &Renderer{root: mediaRoot}
}

// Render produces the three diagnostic artifacts for a backtest and returns
// their media-root-relative paths.
func (r *Renderer) Render(ticker string, dates []time.Time, actual, predicted []float64) (models.Artifacts, error) {
	if len(dates) != len(actual) || len(actual) != len(predicted) {
		return models.Artifacts{}, &models.DimensionMismatchError{ActualLen: len(actual), PredictedLen: len(predicted)}
	}

	dir := filepath.Join(r.root, "plots", ticker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.Artifacts{}, fmt.Errorf("create plot dir: %w", err)
	}

	residuals := make([]float64, len(actual))
	for i := range actual {
		residuals[i] = actual[i] - predicted[i]
	}

	if err := r.renderPrediction(ticker, dir, dates, actual, predicted); err != nil {
		return models.Artifacts{}, fmt.Errorf("prediction plot: %w", err)
	}
	if err := r.renderResiduals(ticker, dir, dates, residuals); err != nil {
		return models.Artifacts{}, fmt.Errorf("residuals plot: %w", err)
	}
	if err := r.renderDistribution(ticker, dir, residuals); err != nil {
		return models.Artifacts{}, fmt.Errorf("residuals distribution: %w", err)
	}

	rel := func(name string) string {
		return filepath.ToSlash(filepath.Join("plots", ticker, name))
	}
	return models.Artifacts{
		PredictionPlot:        rel(predictionPlotName),
		ResidualsPlot:         rel(residualsPlotName),
		ResidualsDistribution: rel(distributionPlotName),
	}, nil
}

func (r *Renderer) renderPrediction(ticker, dir string, dates []time.Time, actual, predicted []float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Stock Price Prediction", ticker)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true

	actualLine, err := plotter.NewLine(timeXYs(dates, actual))
	if err != nil {
		return err
	}
	actualLine.Color = actualColor

	predictedLine, err := plotter.NewLine(timeXYs(dates, predicted))
	if err != nil {
		return err
	}
	predictedLine.Color = predictedColor
	predictedLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(actualLine, predictedLine)
	p.Legend.Add("Actual", actualLine)
	p.Legend.Add("Predicted", predictedLine)

	return p.Save(14*vg.Inch, 7*vg.Inch, filepath.Join(dir, predictionPlotName))
}

func (r *Renderer) renderResiduals(ticker, dir string, dates []time.Time, residuals []float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Residuals (Actual - Predicted)", ticker)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Residual (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	line, err := plotter.NewLine(timeXYs(dates, residuals))
	if err != nil {
		return err
	}
	line.Color = residualColor

	zero, err := plotter.NewLine(plotter.XYs{
		{X: float64(dates[0].Unix()), Y: 0},
		{X: float64(dates[len(dates)-1].Unix()), Y: 0},
	})
	if err != nil {
		return err
	}
	zero.Color = color.Black
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(line, zero)

	return p.Save(14*vg.Inch, 5*vg.Inch, filepath.Join(dir, residualsPlotName))
}

func (r *Renderer) renderDistribution(ticker, dir string, residuals []float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Residuals Distribution", ticker)
	p.X.Label.Text = "Residual (USD)"
	p.Y.Label.Text = "Density"
	p.Legend.Top = true

	hist, err := plotter.NewHist(plotter.Values(residuals), 30)
	if err != nil {
		return err
	}
	hist.Normalize(1)
	hist.FillColor = histColor

	mean, std := meanStd(residuals)
	peak := 0.0
	for _, bin := range hist.Bins {
		if w := bin.Max - bin.Min; w > 0 {
			if d := bin.Weight / w; d > peak {
				peak = d
			}
		}
	}

	p.Add(hist)

	// Fitted normal curve as the density overlay.
	if std > 0 {
		density := plotter.NewFunction(func(x float64) float64 {
			return math.Exp(-(x-mean)*(x-mean)/(2*std*std)) / (std * math.Sqrt(2*math.Pi))
		})
		density.Color = actualColor
		density.Width = vg.Points(2)
		p.Add(density)
		p.Legend.Add("Density", density)
	}

	zero, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: 0, Y: peak},
	})
	if err != nil {
		return err
	}
	zero.Color = predictedColor
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	zero.Width = vg.Points(2)
	p.Add(zero)
	p.Legend.Add("Zero Error", zero)

	return p.Save(10*vg.Inch, 5*vg.Inch, filepath.Join(dir, distributionPlotName))
}

func timeXYs(dates []time.Time, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i := range ys {
		pts[i].X = float64(dates[i].Unix())
		pts[i].Y = ys[i]
	}
	return pts
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	std = math.Sqrt(std / float64(len(xs)))
	return mean, std
}
