package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/brain"
	"github.com/wonny/folio/internal/charts"
	"github.com/wonny/folio/internal/forecast"
	"github.com/wonny/folio/internal/montecarlo"
	"github.com/wonny/folio/internal/scenario"
	"github.com/wonny/folio/pkg/logger"
)

// SimulationHandler handles Monte Carlo, forecast and scenario endpoints
type SimulationHandler struct {
	orchestrator  *brain.Orchestrator
	defaultConfig montecarlo.Config
	logger        *logger.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(orchestrator *brain.Orchestrator, defaultConfig montecarlo.Config, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		orchestrator:  orchestrator,
		defaultConfig: defaultConfig,
		logger:        log,
	}
}

// SimulationRequest 시뮬레이션 요청 바디
// 생략된 설정은 서버 기본값 사용
type SimulationRequest struct {
	PortfolioRequest
	Horizon        int   `json:"horizon"`
	NumSimulations int   `json:"num_simulations"`
	Seed           int64 `json:"seed"`
}

// SimulationResponse 시뮬레이션 응답
// 전체 경로 텐서 대신 백분위수 밴드만 반환 (응답 크기 제한)
type SimulationResponse struct {
	Tickers []string               `json:"tickers"`
	Config  montecarlo.Config      `json:"config"`
	Dates   []string               `json:"dates"`
	Risk    montecarlo.RiskSummary `json:"risk"`
	Bands   map[string][]float64   `json:"percentile_bands"`
}

// Simulate runs a correlated GBM Monte Carlo simulation
// POST /api/simulate
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pf, err := req.build()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	simConfig := h.defaultConfig
	if req.Horizon > 0 {
		simConfig.Horizon = req.Horizon
	}
	if req.NumSimulations > 0 {
		simConfig.NumSimulations = req.NumSimulations
	}
	if req.Seed != 0 {
		simConfig.Seed = req.Seed
	}

	result, err := h.orchestrator.Simulate(ctx, pf, simConfig)
	if err != nil {
		h.logger.WithError(err).WithField("tickers", req.Tickers).Error("Simulation failed")
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	bands := montecarlo.PathPercentiles(result.PortfolioPaths, charts.FanPercentiles)
	bandMap := make(map[string][]float64, len(charts.FanPercentiles))
	for i, p := range charts.FanPercentiles {
		bandMap["p"+strconv.FormatFloat(p, 'f', -1, 64)] = bands[i]
	}

	dates := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		dates[i] = d.Format("2006-01-02")
	}

	respondJSON(w, http.StatusOK, &SimulationResponse{
		Tickers: result.Tickers,
		Config:  result.Config,
		Dates:   dates,
		Risk:    result.Risk,
		Bands:   bandMap,
	})
}

// Forecast trains the windowed regression and predicts the next close
// GET /api/forecast/{ticker}?window=30
func (h *SimulationHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	window := forecast.DefaultWindow
	if s := r.URL.Query().Get("window"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			window = v
		}
	}

	result, err := h.orchestrator.Forecast(ctx, ticker, window)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Forecast failed")
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListScenarios returns the built-in market scenarios
// GET /api/scenarios
func (h *SimulationHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": scenario.All(),
	})
}

// RunScenarios applies all built-in scenarios to a portfolio
// POST /api/scenarios/run
func (h *SimulationHandler) RunScenarios(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pf, err := req.build()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": h.orchestrator.Scenarios(pf),
	})
}
