package analytics

import (
	"fmt"
	"math"

	"github.com/wonny/folio/internal/assets"
	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/portfolio"
	"github.com/wonny/folio/internal/returns"
)

// =============================================================================
// Portfolio Analytics Engine - 순수 계산기
// =============================================================================

// Engine 포트폴리오 분석 엔진
// ⭐ 순수 계산기: 데이터 수집은 marketdata, 비중 검증은 portfolio가 담당
type Engine struct {
	riskFreeRate    float64
	benchmarkTicker string
	catalog         *assets.Catalog
}

// NewEngine 새 분석 엔진 생성
// riskFreeRate: 연환산 무위험수익률 (기본 0.02)
// benchmarkTicker: 베타 계산용 시장 프록시 (포트폴리오에 없으면 동일가중 평균 사용)
func NewEngine(riskFreeRate float64, benchmarkTicker string, catalog *assets.Catalog) *Engine {
	return &Engine{
		riskFreeRate:    riskFreeRate,
		benchmarkTicker: benchmarkTicker,
		catalog:         catalog,
	}
}

// Analyze 정렬된 가격 데이터와 포트폴리오로 전체 분석 리포트 생성
// 자산 순서는 aligned.Tickers로 고정 — 모든 결과 슬라이스가 동일 순서
func (e *Engine) Analyze(aligned *marketdata.AlignedCloses, pf *portfolio.Portfolio) (*AnalysisReport, error) {
	// 단순수익률 기준 (분석 엔진 규약 — GBM 시뮬레이터의 로그수익률과 혼용 금지)
	est, err := returns.FromAligned(aligned, returns.Simple)
	if err != nil {
		return nil, fmt.Errorf("return estimation failed: %w", err)
	}
	if len(pf.Tickers) != est.NumAssets() {
		return nil, fmt.Errorf("%w: portfolio has %d assets, data has %d",
			ErrLengthMismatch, len(pf.Tickers), est.NumAssets())
	}
	for i, ticker := range pf.Tickers {
		if est.Tickers[i] != ticker {
			return nil, fmt.Errorf("%w: ticker order mismatch at %d: %s vs %s",
				ErrLengthMismatch, i, ticker, est.Tickers[i])
		}
	}

	// 비중 가중 포트폴리오 수익률 시계열
	nObs := est.NumObservations()
	portfolioReturns := make([]float64, nObs)
	for t := 0; t < nObs; t++ {
		var r float64
		for i := range pf.Tickers {
			r += pf.Weights[i] * est.Series[i][t]
		}
		portfolioReturns[t] = r
	}

	report := &AnalysisReport{
		Tickers:         append([]string(nil), pf.Tickers...),
		Weights:         append([]float64(nil), pf.Weights...),
		RiskFreeRate:    e.riskFreeRate,
		Start:           aligned.Dates[0],
		End:             aligned.Dates[len(aligned.Dates)-1],
		NumObservations: nObs,
	}

	report.BasicStats = e.basicStats(portfolioReturns)
	report.RiskAdjusted = RiskAdjusted{
		Sharpe:  SharpeRatio(portfolioReturns, e.riskFreeRate),
		Sortino: SortinoRatio(portfolioReturns, e.riskFreeRate),
		Calmar:  CalmarRatio(portfolioReturns),
	}
	report.RiskMetrics = RiskMetrics{
		MaxDrawdown: MaxDrawdown(portfolioReturns),
		VaR95:       HistoricalVaR(portfolioReturns),
		CVaR95:      HistoricalCVaR(portfolioReturns),
		Beta:        Beta(portfolioReturns, e.marketProxy(est)),
	}

	allocation, err := e.allocation(pf)
	if err != nil {
		return nil, err
	}
	report.Allocation = allocation

	report.Statistical = Statistical{
		Skewness:         Skewness(portfolioReturns),
		Kurtosis:         Kurtosis(portfolioReturns),
		JarqueBeraPValue: JarqueBeraPValue(portfolioReturns),
	}
	report.Diversification = Diversification{
		PortfolioVariance:    PortfolioVariance(est.Cov, pf.Weights),
		DiversificationRatio: DiversificationRatio(est.Cov, pf.Weights),
		Correlation:          correlationMatrix(est),
	}
	report.Components = Components{
		IndividualReturns:  annualize(est.Mean),
		IndividualVols:     annualizeVols(est.Volatility()),
		WeightContribution: WeightContributions(pf.Weights, est.Mean),
		RiskContribution:   RiskContributions(est.Cov, pf.Weights),
	}

	return report, nil
}

func (e *Engine) basicStats(portfolioReturns []float64) BasicStats {
	cumulative := make([]float64, len(portfolioReturns))
	product := 1.0
	for t, r := range portfolioReturns {
		product *= 1 + r
		cumulative[t] = product - 1
	}

	return BasicStats{
		TotalReturn:          product - 1,
		AnnualizedReturn:     AnnualizedReturn(portfolioReturns),
		AnnualizedVolatility: AnnualizedVolatility(portfolioReturns),
		CumulativeReturn:     cumulative,
	}
}

// marketProxy 베타 계산용 시장 수익률
// 벤치마크 티커가 포트폴리오에 있으면 그 시계열, 없으면 전 자산 동일가중 평균
func (e *Engine) marketProxy(est *returns.Estimate) []float64 {
	for i, ticker := range est.Tickers {
		if ticker == e.benchmarkTicker {
			return est.Series[i]
		}
	}

	nObs := est.NumObservations()
	proxy := make([]float64, nObs)
	for t := 0; t < nObs; t++ {
		var sum float64
		for i := range est.Tickers {
			sum += est.Series[i][t]
		}
		proxy[t] = sum / float64(len(est.Tickers))
	}
	return proxy
}

func (e *Engine) allocation(pf *portfolio.Portfolio) (Allocation, error) {
	byCategory, err := e.catalog.AllocationByCategory(pf.Tickers, pf.Weights)
	if err != nil {
		return Allocation{}, err
	}

	details := make(map[string]assets.Info, len(pf.Tickers))
	for _, ticker := range pf.Tickers {
		details[ticker] = e.catalog.Lookup(ticker)
	}

	return Allocation{ByCategory: byCategory, Details: details}, nil
}

func correlationMatrix(est *returns.Estimate) [][]float64 {
	n := est.NumAssets()
	corr := make([][]float64, n)
	for i := 0; i < n; i++ {
		corr[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			denom := math.Sqrt(est.Cov.At(i, i) * est.Cov.At(j, j))
			if denom == 0 {
				corr[i][j] = Undefined()
				continue
			}
			corr[i][j] = est.Cov.At(i, j) / denom
		}
	}
	return corr
}

func annualize(dailyMeans []float64) []float64 {
	out := make([]float64, len(dailyMeans))
	for i, m := range dailyMeans {
		out[i] = m * TradingDays
	}
	return out
}

func annualizeVols(dailyVols []float64) []float64 {
	out := make([]float64, len(dailyVols))
	factor := math.Sqrt(TradingDays)
	for i, v := range dailyVols {
		out[i] = v * factor
	}
	return out
}
