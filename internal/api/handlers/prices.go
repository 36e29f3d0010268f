package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/pkg/logger"
)

// PriceHandler handles price data endpoints
type PriceHandler struct {
	cache  *marketdata.Cache
	logger *logger.Logger
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(cache *marketdata.Cache, log *logger.Logger) *PriceHandler {
	return &PriceHandler{
		cache:  cache,
		logger: log,
	}
}

// DailyBarResponse represents a daily bar for API response
type DailyBarResponse struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// GetDaily returns daily bars for a ticker
// GET /api/prices/{ticker}
func (h *PriceHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	series, err := h.cache.Get(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get daily prices")
		respondError(w, http.StatusBadGateway, "Failed to retrieve daily prices")
		return
	}

	result := make([]DailyBarResponse, len(series.Bars))
	for i, bar := range series.Bars {
		result[i] = DailyBarResponse{
			Date:   bar.Date.Format("2006-01-02"),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": series.Ticker,
		"count":  len(result),
		"bars":   result,
	})
}
