package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/folio/internal/montecarlo"
)

// =============================================================================
// Risk/Return Metrics (Pure)
// =============================================================================

// AnnualizedReturn 연환산 수익률: mean(daily) × 252
func AnnualizedReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return Undefined()
	}
	return stat.Mean(returns, nil) * TradingDays
}

// AnnualizedVolatility 연환산 변동성: 표본 표준편차 × √252
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return Undefined()
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDays)
}

// SharpeRatio (연환산 수익률 - 무위험수익률) / 연환산 변동성
// 변동성 0이면 Undefined (에러 아님)
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	vol := AnnualizedVolatility(returns)
	if IsUndefined(vol) || vol == 0 {
		return Undefined()
	}
	return (AnnualizedReturn(returns) - riskFreeRate) / vol
}

// SortinoRatio 하방 위험만 사용한 위험조정 수익률
// 음수 수익률 일이 없으면 Undefined
func SortinoRatio(returns []float64, riskFreeRate float64) float64 {
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) == 0 {
		return Undefined()
	}

	downsideRisk := stat.StdDev(downside, nil) * math.Sqrt(TradingDays)
	if IsUndefined(downsideRisk) || downsideRisk == 0 {
		return Undefined()
	}
	return (AnnualizedReturn(returns) - riskFreeRate) / downsideRisk
}

// MaxDrawdown 최대 낙폭: min((cum - runmax) / runmax), 항상 ≤ 0
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return Undefined()
	}

	cumulative := 1.0
	runningMax := 1.0
	minDD := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > runningMax {
			runningMax = cumulative
		}
		dd := (cumulative - runningMax) / runningMax
		if dd < minDD {
			minDD = dd
		}
	}
	return minDD
}

// CalmarRatio 연환산 수익률 / |최대 낙폭|
// 낙폭이 정확히 0이면 Undefined
func CalmarRatio(returns []float64) float64 {
	maxDD := MaxDrawdown(returns)
	if IsUndefined(maxDD) || maxDD == 0 {
		return Undefined()
	}
	return AnnualizedReturn(returns) / math.Abs(maxDD)
}

// HistoricalVaR 과거 데이터 기반 VaR: 일별 수익률 분포의 5 백분위수
// ⭐ 수익률 기준 (보통 음수) — Monte Carlo의 손실 기준 VaR와 규약이 다름
func HistoricalVaR(returns []float64) float64 {
	if len(returns) == 0 {
		return Undefined()
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)
	return montecarlo.Percentile(sorted, 5)
}

// HistoricalCVaR VaR 이하 수익률의 평균 (Expected Shortfall)
func HistoricalCVaR(returns []float64) float64 {
	v := HistoricalVaR(returns)
	if IsUndefined(v) {
		return Undefined()
	}

	var sum float64
	count := 0
	for _, r := range returns {
		if r <= v {
			sum += r
			count++
		}
	}
	if count == 0 {
		return Undefined()
	}
	return sum / float64(count)
}

// Beta cov(포트폴리오, 시장 프록시) / var(시장 프록시)
// 시장 분산이 0이면 Undefined
func Beta(portfolioReturns, marketReturns []float64) float64 {
	if len(portfolioReturns) < 2 || len(portfolioReturns) != len(marketReturns) {
		return Undefined()
	}

	marketVar := stat.Variance(marketReturns, nil)
	if marketVar == 0 || IsUndefined(marketVar) {
		return Undefined()
	}
	return stat.Covariance(portfolioReturns, marketReturns, nil) / marketVar
}

// PortfolioVariance wᵗ·Cov·w (일별 분산)
func PortfolioVariance(cov *mat.SymDense, weights []float64) float64 {
	n := len(weights)
	var total float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += weights[i] * cov.At(i, j) * weights[j]
		}
	}
	return total
}

// DiversificationRatio Σw_i·σ_i / σ_p
// 포트폴리오 변동성이 0이면 Undefined
func DiversificationRatio(cov *mat.SymDense, weights []float64) float64 {
	portfolioVol := math.Sqrt(PortfolioVariance(cov, weights))
	if portfolioVol == 0 {
		return Undefined()
	}

	var weightedVol float64
	for i, w := range weights {
		weightedVol += w * math.Sqrt(cov.At(i, i))
	}
	return weightedVol / portfolioVol
}

// RiskContributions Euler 리스크 분해 (연환산)
// RC_i = w_i·(Cov·w)_i / σ_p × √252 — 합은 연환산 포트폴리오 변동성과 일치
func RiskContributions(cov *mat.SymDense, weights []float64) []float64 {
	n := len(weights)
	portfolioVol := math.Sqrt(PortfolioVariance(cov, weights))

	contributions := make([]float64, n)
	if portfolioVol == 0 {
		for i := range contributions {
			contributions[i] = Undefined()
		}
		return contributions
	}

	for i := 0; i < n; i++ {
		var marginal float64
		for j := 0; j < n; j++ {
			marginal += cov.At(i, j) * weights[j]
		}
		contributions[i] = weights[i] * marginal / portfolioVol * math.Sqrt(TradingDays)
	}
	return contributions
}

// WeightContributions w_i × 연환산 개별 수익률_i
func WeightContributions(weights, meanDailyReturns []float64) []float64 {
	contributions := make([]float64, len(weights))
	for i, w := range weights {
		contributions[i] = w * meanDailyReturns[i] * TradingDays
	}
	return contributions
}
