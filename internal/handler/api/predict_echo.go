package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"StockCast/internal/domain/models"
	icache "StockCast/internal/service/cache"
	"StockCast/internal/service/ratelimit"
	"StockCast/internal/usecase"
	xhttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/util"
)

// PredictHandler serves the prediction endpoints. Responses use the plain
// JSON shapes consumed by the frontend, not the generic API envelope.
type PredictHandler struct {
	pipeline  *usecase.Pipeline
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
	logger    *applogger.Logger
	mediaRoot string
	baseURL   string
	cacheTTL  time.Duration
}

func NewPredictHandler(
	pipeline *usecase.Pipeline,
	cache icache.BytesCache,
	logger *applogger.Logger,
	mediaRoot, baseURL string,
	cacheTTL time.Duration,
) *PredictHandler {
	return &PredictHandler{
		pipeline:  pipeline,
		cache:     cache,
		rl:        ratelimit.New(),
		logger:    logger,
		mediaRoot: mediaRoot,
		baseURL:   strings.TrimRight(baseURL, "/"),
		cacheTTL:  cacheTTL,
	}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict-stock", h.PredictStock)
	g.GET("/predict", h.Predict)
	e.Static("/media", h.mediaRoot)
}

type backtestMetrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

type backtestPlots struct {
	PredictionPlotURL        string `json:"prediction_plot_url"`
	ResidualsPlotURL         string `json:"residuals_plot_url"`
	ResidualsDistributionURL string `json:"residuals_distribution_url"`
}

type predictStockResponse struct {
	Metrics backtestMetrics `json:"metrics"`
	Plots   backtestPlots   `json:"plots"`
}

// PredictStock runs the backtest flow and returns quality metrics plus plot
// URLs for the requested ticker.
func (h *PredictHandler) PredictStock(c echo.Context) error {
	if !h.allow(c, "predict-stock") {
		return rateLimited(c)
	}

	req := &models.PredictStockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr})
	}

	res, err := h.pipeline.Backtest(c.Request().Context(), req.Ticker)
	if err != nil {
		return h.errorResponse(c, "predict-stock", err)
	}

	return c.JSON(http.StatusOK, predictStockResponse{
		Metrics: backtestMetrics{MSE: res.Metrics.MSE, RMSE: res.Metrics.RMSE, R2: res.Metrics.R2},
		Plots: backtestPlots{
			PredictionPlotURL:        h.mediaURL(res.Plots.PredictionPlot),
			ResidualsPlotURL:         h.mediaURL(res.Plots.ResidualsPlot),
			ResidualsDistributionURL: h.mediaURL(res.Plots.ResidualsDistribution),
		},
	})
}

type forecastResponse struct {
	Ticker         string  `json:"ticker"`
	CompanyName    string  `json:"company_name"`
	PredictedPrice float64 `json:"predicted_price"`
	PredictionDate string  `json:"prediction_date"`
	LastClosePrice float64 `json:"last_close_price"`
	LastCloseDate  string  `json:"last_close_date"`
}

// Predict returns the next-business-day forecast for the ticker query
// parameter, falling back to the configured default. Responses are cached
// per ticker for a short TTL.
func (h *PredictHandler) Predict(c echo.Context) error {
	if !h.allow(c, "predict") {
		return rateLimited(c)
	}

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr})
	}

	key := "forecast:" + strings.ToUpper(strings.TrimSpace(req.Ticker))
	if h.cache != nil && h.cacheTTL > 0 {
		if b, ok, err := h.cache.GetBytes(key); err != nil {
			h.logger.Warn("forecast cache get failed", applogger.Error(err))
		} else if ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	res, err := h.pipeline.Forecast(c.Request().Context(), req.Ticker)
	if err != nil {
		return h.errorResponse(c, "predict", err)
	}

	body := forecastResponse{
		Ticker:         res.Ticker,
		CompanyName:    res.CompanyName,
		PredictedPrice: res.PredictedPrice,
		PredictionDate: util.FormatDate(res.PredictionDate),
		LastClosePrice: res.LastClosePrice,
		LastCloseDate:  util.FormatDate(res.LastCloseDate),
	}

	if h.cache != nil && h.cacheTTL > 0 {
		if b, err := json.Marshal(body); err == nil {
			if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
				h.logger.Warn("forecast cache set failed", applogger.Error(err))
			}
		}
	}

	return c.JSON(http.StatusOK, body)
}

func (h *PredictHandler) mediaURL(rel string) string {
	return h.baseURL + "/" + strings.TrimLeft(rel, "/")
}

func (h *PredictHandler) allow(c echo.Context, endpoint string) bool {
	return h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2)
}

func rateLimited(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limited"})
}

// errorResponse maps pipeline failures onto HTTP statuses: data problems are
// client errors, everything else is a server fault.
func (h *PredictHandler) errorResponse(c echo.Context, endpoint string, err error) error {
	var (
		noData       *models.NoDataError
		insufficient *models.InsufficientDataError
		notFound     *models.ModelNotFoundError
	)
	switch {
	case errors.As(err, &noData):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": noData.Error()})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": insufficient.Error()})
	case errors.As(err, &notFound):
		h.logger.Error(endpoint+" model artifact missing", applogger.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "prediction model is not available"})
	default:
		h.logger.Error(endpoint+" failed", applogger.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
