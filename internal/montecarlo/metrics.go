package montecarlo

import (
	"fmt"
	"math"
	"sort"
)

// =============================================================================
// Risk Metric Extraction
// =============================================================================

// Summarize computes risk metrics from the terminal return distribution
// ⭐ VaR/CVaR는 손실 기준: loss = -terminal_log_return, 양수 = 손실
func Summarize(terminalReturns, terminalLogReturns []float64) (*RiskSummary, error) {
	if len(terminalReturns) == 0 || len(terminalReturns) != len(terminalLogReturns) {
		return nil, fmt.Errorf("%w: returns=%d, logReturns=%d",
			ErrDimensionMismatch, len(terminalReturns), len(terminalLogReturns))
	}

	n := len(terminalLogReturns)

	// 손실 분포 (오름차순 정렬)
	losses := make([]float64, n)
	for i, r := range terminalLogReturns {
		losses[i] = -r
	}
	sort.Float64s(losses)

	var95 := Percentile(losses, 95)

	// CVaR: VaR 이상 손실의 평균 (tail mean)
	var tailSum float64
	tailCount := 0
	for i := n - 1; i >= 0; i-- {
		if losses[i] < var95 {
			break
		}
		tailSum += losses[i]
		tailCount++
	}
	// 백분위수 정의상 N ≥ 20이면 발생하지 않지만 방어적으로 체크
	if tailCount == 0 {
		return nil, fmt.Errorf("%w: no losses at or beyond VaR %.6f", ErrEmptyTail, var95)
	}
	cvar95 := tailSum / float64(tailCount)

	// 단순수익률 분포 지표
	sorted := make([]float64, n)
	copy(sorted, terminalReturns)
	sort.Float64s(sorted)

	lossCount := 0
	for _, r := range terminalReturns {
		if r < 0 {
			lossCount++
		}
	}

	return &RiskSummary{
		VaR95:    var95,
		CVaR95:   cvar95,
		ProbLoss: float64(lossCount) / float64(n),
		Median:   Percentile(sorted, 50),
		Best:     sorted[n-1],
		Worst:    sorted[0],
	}, nil
}

// Percentile 백분위수 계산 (선형 보간, p는 0~100)
// 정렬된 입력 전제
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// 선형 보간
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PathPercentiles computes per-timestep percentile bands across simulations
// Fan chart용: 반환 [len(ps)][T+1]
func PathPercentiles(portfolioPaths [][]float64, ps []float64) [][]float64 {
	bands := make([][]float64, len(ps))
	for k := range bands {
		bands[k] = make([]float64, len(portfolioPaths))
	}

	buf := make([]float64, 0)
	for t, row := range portfolioPaths {
		buf = append(buf[:0], row...)
		sort.Float64s(buf)
		for k, p := range ps {
			bands[k][t] = Percentile(buf, p)
		}
	}
	return bands
}
