package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSharpeUndefinedOnZeroVolatility(t *testing.T) {
	// 252일 동안 매일 +0.1% — 분산 0이므로 샤프는 센티널 (예외 아님)
	returns := make([]float64, 252)
	for i := range returns {
		returns[i] = 0.001
	}

	assert.True(t, IsUndefined(SharpeRatio(returns, 0.02)))
	assert.InDelta(t, 0.001*252, AnnualizedReturn(returns), 1e-12)
	assert.Equal(t, 0.0, AnnualizedVolatility(returns))
}

func TestSharpeKnownValue(t *testing.T) {
	returns := []float64{0.02, 0.0, -0.01, 0.03}

	// mean=0.01, 표본분산 = 0.001/3
	annRet := 0.01 * 252
	annVol := math.Sqrt(0.001/3) * math.Sqrt(252)

	got := SharpeRatio(returns, 0.02)
	assert.InDelta(t, (annRet-0.02)/annVol, got, 1e-12)
}

func TestSortinoUndefinedWithoutNegativeDays(t *testing.T) {
	returns := []float64{0.01, 0.0, 0.02, 0.005}
	assert.True(t, IsUndefined(SortinoRatio(returns, 0.02)))
}

func TestSortinoUsesDownsideOnly(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.01, -0.03, 0.015}

	// 하방 표준편차는 음수 수익률 {-0.01, -0.03}만으로 계산
	downside := []float64{-0.01, -0.03}
	mean := -0.02
	var ss float64
	for _, d := range downside {
		ss += (d - mean) * (d - mean)
	}
	downsideRisk := math.Sqrt(ss/1) * math.Sqrt(252)

	want := (AnnualizedReturn(returns) - 0.02) / downsideRisk
	assert.InDelta(t, want, SortinoRatio(returns, 0.02), 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	// cum: 1.1 → 0.55 → 0.66, 낙폭 최소값 = (0.55-1.1)/1.1 = -0.5
	returns := []float64{0.1, -0.5, 0.2}
	assert.InDelta(t, -0.5, MaxDrawdown(returns), 1e-12)
}

func TestMaxDrawdownNonPositive(t *testing.T) {
	cases := [][]float64{
		{0.01, 0.02, 0.03},
		{-0.01, 0.02, -0.03},
		{0.0, 0.0},
	}
	for _, returns := range cases {
		assert.LessOrEqual(t, MaxDrawdown(returns), 0.0)
	}

	// 단조 비감소 누적 곡선에서만 정확히 0
	assert.Equal(t, 0.0, MaxDrawdown([]float64{0.01, 0.0, 0.02}))
}

func TestCalmarUndefinedOnZeroDrawdown(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.0}
	assert.True(t, IsUndefined(CalmarRatio(returns)))

	// 낙폭 있으면 정의됨
	withDD := []float64{0.1, -0.5, 0.2}
	want := AnnualizedReturn(withDD) / 0.5
	assert.InDelta(t, want, CalmarRatio(withDD), 1e-12)
}

func TestHistoricalVaRCVaR(t *testing.T) {
	// -0.50 .. 0.49 균등 분포 100개
	returns := make([]float64, 100)
	for i := range returns {
		returns[i] = float64(i)/100 - 0.50
	}

	// 5 백분위수: idx = 0.05·99 = 4.95 → -0.46과 -0.45 사이 보간
	v := HistoricalVaR(returns)
	assert.InDelta(t, -0.4505, v, 1e-12)

	// CVaR: VaR 이하 5개 값 {-0.50..-0.46}의 평균
	assert.InDelta(t, -0.48, HistoricalCVaR(returns), 1e-12)

	// 수익률 기준 규약: 손실 꼬리는 음수
	assert.Less(t, HistoricalCVaR(returns), v+1e-15)
}

func TestBeta(t *testing.T) {
	market := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	leveraged := make([]float64, len(market))
	for i, r := range market {
		leveraged[i] = 2 * r
	}

	assert.InDelta(t, 2.0, Beta(leveraged, market), 1e-12)
	assert.InDelta(t, 1.0, Beta(market, market), 1e-12)

	// 시장 분산 0이면 센티널
	flat := []float64{0.01, 0.01, 0.01, 0.01, 0.01}
	assert.True(t, IsUndefined(Beta(market, flat)))
}

func testCov() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		0.0001, 0.00002, 0.00001,
		0.00002, 0.00015, 0.00003,
		0.00001, 0.00003, 0.00008,
	})
}

func TestRiskContributionsSumToPortfolioVolatility(t *testing.T) {
	cov := testCov()
	weights := []float64{0.5, 0.3, 0.2}

	contributions := RiskContributions(cov, weights)
	require.Len(t, contributions, 3)

	var sum float64
	for _, c := range contributions {
		sum += c
	}

	// Euler 분해: 합 = 연환산 포트폴리오 변동성
	annVol := math.Sqrt(PortfolioVariance(cov, weights)) * math.Sqrt(252)
	assert.InDelta(t, annVol, sum, 1e-12)
}

func TestDiversificationRatioAtLeastOne(t *testing.T) {
	dr := DiversificationRatio(testCov(), []float64{0.5, 0.3, 0.2})
	assert.GreaterOrEqual(t, dr, 1.0)
}

func TestWeightContributions(t *testing.T) {
	got := WeightContributions([]float64{0.6, 0.4}, []float64{0.001, 0.0005})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.6*0.001*252, got[0], 1e-12)
	assert.InDelta(t, 0.4*0.0005*252, got[1], 1e-12)
}
