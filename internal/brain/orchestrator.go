package brain

import (
	"context"
	"fmt"

	"github.com/wonny/folio/internal/analytics"
	"github.com/wonny/folio/internal/forecast"
	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/montecarlo"
	"github.com/wonny/folio/internal/portfolio"
	"github.com/wonny/folio/internal/returns"
	"github.com/wonny/folio/internal/scenario"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/logger"
)

// PriceSource 가격 시계열 공급자 (Yahoo 캐시 또는 로컬 CSV 디렉터리)
type PriceSource interface {
	Get(ctx context.Context, ticker string) (*marketdata.PriceSeries, error)
	GetAll(ctx context.Context, tickers []string) (map[string]*marketdata.PriceSeries, error)
}

// Orchestrator coordinates data loading and the analysis/simulation engines
// ⭐ SSOT: 데이터 수집 → 정렬 → 추정 → 엔진 호출 조립은 여기서만
// 엔진들은 순수 계산기 — I/O와 조립 책임은 전부 이 레이어
type Orchestrator struct {
	cache  PriceSource
	engine *analytics.Engine
	config *config.Config
	logger *logger.Logger
}

// New creates a new orchestrator
func New(cache PriceSource, engine *analytics.Engine, cfg *config.Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		cache:  cache,
		engine: engine,
		config: cfg,
		logger: log,
	}
}

// LoadAligned 티커 목록의 가격을 수집해 공통 날짜로 정렬
func (o *Orchestrator) LoadAligned(ctx context.Context, tickers []string) (*marketdata.AlignedCloses, error) {
	data, err := o.cache.GetAll(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("load price data: %w", err)
	}

	aligned, err := marketdata.Align(data, tickers)
	if err != nil {
		return nil, fmt.Errorf("align price data: %w", err)
	}

	o.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"dates":   aligned.NumDates(),
	}).Debug("Price data aligned")

	return aligned, nil
}

// Analyze 포트폴리오 전체 분석 실행
func (o *Orchestrator) Analyze(ctx context.Context, pf *portfolio.Portfolio) (*analytics.AnalysisReport, error) {
	aligned, err := o.LoadAligned(ctx, pf.Tickers)
	if err != nil {
		return nil, err
	}
	return o.engine.Analyze(aligned, pf)
}

// Simulate Monte Carlo 시뮬레이션 실행
// 파라미터 추정: 로그수익률 평균(드리프트 상한 적용) + 공분산
func (o *Orchestrator) Simulate(ctx context.Context, pf *portfolio.Portfolio, simConfig montecarlo.Config) (*montecarlo.Result, error) {
	aligned, err := o.LoadAligned(ctx, pf.Tickers)
	if err != nil {
		return nil, err
	}

	est, err := returns.FromAligned(aligned, returns.Log)
	if err != nil {
		return nil, fmt.Errorf("estimate simulation parameters: %w", err)
	}

	input := montecarlo.Input{
		Tickers:     aligned.Tickers,
		StartPrices: aligned.LastRow(),
		Mean:        est.CappedMean(o.config.Simulation.DriftCap),
		Cov:         est.Cov,
		Weights:     pf.Weights,
		StartDate:   aligned.Dates[len(aligned.Dates)-1],
	}

	o.logger.WithFields(map[string]interface{}{
		"horizon":     simConfig.Horizon,
		"simulations": simConfig.NumSimulations,
		"seed":        simConfig.Seed,
	}).Info("Running Monte Carlo simulation")

	return montecarlo.NewSimulator(simConfig).Simulate(input)
}

// ForecastResult 단일 종목 예측 결과
type ForecastResult struct {
	Ticker    string                   `json:"ticker"`
	NextClose float64                  `json:"next_close"` // 다음 거래일 예측 종가
	LastClose float64                  `json:"last_close"`
	Model     *forecast.Model          `json:"model"`
	Accuracy  *forecast.AccuracyReport `json:"accuracy"`
}

// Forecast 단일 종목 다음 거래일 종가 예측 + 검증 세트 정확도
func (o *Orchestrator) Forecast(ctx context.Context, ticker string, window int) (*ForecastResult, error) {
	series, err := o.cache.Get(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("load price data for %s: %w", ticker, err)
	}
	closes := series.Closes()

	model, test, err := forecast.Train(closes, window)
	if err != nil {
		return nil, fmt.Errorf("train forecaster for %s: %w", ticker, err)
	}

	predictions, err := model.PredictAll(test)
	if err != nil {
		return nil, err
	}
	accuracy, err := forecast.CalculateAccuracy(test, predictions)
	if err != nil {
		return nil, err
	}

	next, err := model.Predict(closes[len(closes)-window:])
	if err != nil {
		return nil, err
	}

	return &ForecastResult{
		Ticker:    ticker,
		NextClose: next,
		LastClose: closes[len(closes)-1],
		Model:     model,
		Accuracy:  accuracy,
	}, nil
}

// Scenarios 내장 시장 시나리오를 포트폴리오에 적용
func (o *Orchestrator) Scenarios(pf *portfolio.Portfolio) []scenario.Result {
	return scenario.RunAll(pf)
}
