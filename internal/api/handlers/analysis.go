package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/folio/internal/analytics"
	"github.com/wonny/folio/internal/brain"
	"github.com/wonny/folio/internal/portfolio"
	"github.com/wonny/folio/internal/report"
	"github.com/wonny/folio/pkg/logger"
)

// AnalysisHandler handles portfolio analysis endpoints
type AnalysisHandler struct {
	orchestrator *brain.Orchestrator
	logger       *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(orchestrator *brain.Orchestrator, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		orchestrator: orchestrator,
		logger:       log,
	}
}

// PortfolioRequest 포트폴리오 지정 공통 요청 바디
type PortfolioRequest struct {
	Tickers []string  `json:"tickers"`
	Weights []float64 `json:"weights"`
}

func (req *PortfolioRequest) build() (*portfolio.Portfolio, error) {
	return portfolio.New(req.Tickers, req.Weights)
}

// AnalysisResponse NaN 센티널을 null로 변환한 분석 결과
type AnalysisResponse struct {
	Tickers         []string `json:"tickers"`
	Weights         []float64 `json:"weights"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	NumObservations int       `json:"num_observations"`

	BasicStats struct {
		TotalReturn          *float64 `json:"total_return"`
		AnnualizedReturn     *float64 `json:"annualized_return"`
		AnnualizedVolatility *float64 `json:"annualized_volatility"`
	} `json:"basic_stats"`

	RiskAdjusted struct {
		Sharpe  *float64 `json:"sharpe"`
		Sortino *float64 `json:"sortino"`
		Calmar  *float64 `json:"calmar"`
	} `json:"risk_adjusted"`

	RiskMetrics struct {
		MaxDrawdown *float64 `json:"max_drawdown"`
		VaR95       *float64 `json:"var_95"`
		CVaR95      *float64 `json:"cvar_95"`
		Beta        *float64 `json:"beta"`
	} `json:"risk_metrics"`

	Allocation map[string]float64 `json:"allocation_by_category"`

	Statistical struct {
		Skewness         *float64 `json:"skewness"`
		Kurtosis         *float64 `json:"kurtosis"`
		JarqueBeraPValue *float64 `json:"jarque_bera_p_value"`
	} `json:"statistical"`

	Diversification struct {
		PortfolioVariance    *float64 `json:"portfolio_variance"`
		DiversificationRatio *float64 `json:"diversification_ratio"`
	} `json:"diversification"`

	Components []ComponentResponse `json:"components"`

	Report string `json:"report"` // 텍스트 리포트 전문
}

// ComponentResponse 자산별 구성요소 행
type ComponentResponse struct {
	Ticker               string   `json:"ticker"`
	Weight               float64  `json:"weight"`
	AnnualizedReturn     *float64 `json:"annualized_return"`
	AnnualizedVolatility *float64 `json:"annualized_volatility"`
	ReturnContribution   *float64 `json:"return_contribution"`
	RiskContribution     *float64 `json:"risk_contribution"`
}

// Analyze runs the full portfolio analysis
// POST /api/analyze {"tickers": [...], "weights": [...]}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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

	result, err := h.orchestrator.Analyze(ctx, pf)
	if err != nil {
		h.logger.WithError(err).WithField("tickers", req.Tickers).Error("Analysis failed")
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toAnalysisResponse(result))
}

func toAnalysisResponse(r *analytics.AnalysisReport) *AnalysisResponse {
	resp := &AnalysisResponse{
		Tickers:         r.Tickers,
		Weights:         r.Weights,
		Start:           r.Start.Format("2006-01-02"),
		End:             r.End.Format("2006-01-02"),
		NumObservations: r.NumObservations,
		Allocation:      r.Allocation.ByCategory,
		Report:          report.Render(r),
	}

	resp.BasicStats.TotalReturn = num(r.BasicStats.TotalReturn)
	resp.BasicStats.AnnualizedReturn = num(r.BasicStats.AnnualizedReturn)
	resp.BasicStats.AnnualizedVolatility = num(r.BasicStats.AnnualizedVolatility)

	resp.RiskAdjusted.Sharpe = num(r.RiskAdjusted.Sharpe)
	resp.RiskAdjusted.Sortino = num(r.RiskAdjusted.Sortino)
	resp.RiskAdjusted.Calmar = num(r.RiskAdjusted.Calmar)

	resp.RiskMetrics.MaxDrawdown = num(r.RiskMetrics.MaxDrawdown)
	resp.RiskMetrics.VaR95 = num(r.RiskMetrics.VaR95)
	resp.RiskMetrics.CVaR95 = num(r.RiskMetrics.CVaR95)
	resp.RiskMetrics.Beta = num(r.RiskMetrics.Beta)

	resp.Statistical.Skewness = num(r.Statistical.Skewness)
	resp.Statistical.Kurtosis = num(r.Statistical.Kurtosis)
	resp.Statistical.JarqueBeraPValue = num(r.Statistical.JarqueBeraPValue)

	resp.Diversification.PortfolioVariance = num(r.Diversification.PortfolioVariance)
	resp.Diversification.DiversificationRatio = num(r.Diversification.DiversificationRatio)

	rows := report.Rows(r)
	resp.Components = make([]ComponentResponse, len(rows))
	for i, row := range rows {
		resp.Components[i] = ComponentResponse{
			Ticker:               row.Ticker,
			Weight:               row.Weight,
			AnnualizedReturn:     num(row.AnnualizedReturn),
			AnnualizedVolatility: num(row.AnnualizedVolatility),
			ReturnContribution:   num(row.ReturnContribution),
			RiskContribution:     num(row.RiskContribution),
		}
	}

	return resp
}
