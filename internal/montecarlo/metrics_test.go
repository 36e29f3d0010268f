package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	// 선형 보간: idx = 0.5·3 = 1.5 → 2와 3 사이
	assert.InDelta(t, 2.5, Percentile(sorted, 50), 1e-12)
	assert.InDelta(t, 1.0, Percentile(sorted, 0), 1e-12)
	assert.InDelta(t, 4.0, Percentile(sorted, 100), 1e-12)
	assert.InDelta(t, 3.85, Percentile(sorted, 95), 1e-12)

	// 단일 원소
	assert.Equal(t, 7.0, Percentile([]float64{7}, 50))
	// 빈 입력은 0
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestSummarizeBasic(t *testing.T) {
	// 100개 중 40개가 손실 → ProbLoss = 0.4
	simple := make([]float64, 100)
	logret := make([]float64, 100)
	for i := 0; i < 100; i++ {
		r := float64(i-40) * 0.01 // -0.40 .. 0.59
		simple[i] = r
		logret[i] = math.Log1p(r)
	}

	risk, err := Summarize(simple, logret)
	require.NoError(t, err)

	assert.InDelta(t, 0.40, risk.ProbLoss, 1e-12)
	assert.InDelta(t, -0.40, risk.Worst, 1e-12)
	assert.InDelta(t, 0.59, risk.Best, 1e-12)

	// 손실 분포 95 백분위수 = -log(1-0.40) 근방의 꼬리
	assert.Greater(t, risk.VaR95, 0.0)
	// CVaR ≥ VaR (꼬리 평균은 경계값 이상)
	assert.GreaterOrEqual(t, risk.CVaR95, risk.VaR95)
}

func TestSummarizeCVaRDominatesVaR(t *testing.T) {
	// 한쪽으로 치우친 손실 꼬리에서도 순서 유지
	logret := []float64{0.05, 0.04, 0.03, 0.02, 0.01, 0.0, -0.01, -0.02, -0.10, -0.50}
	simple := make([]float64, len(logret))
	for i, lr := range logret {
		simple[i] = math.Expm1(lr)
	}

	risk, err := Summarize(simple, logret)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, risk.CVaR95, risk.VaR95)
}

func TestSummarizeAllGains(t *testing.T) {
	// 전부 이익이어도 VaR는 정의됨 (음수 손실)
	logret := []float64{0.01, 0.02, 0.03, 0.04}
	simple := []float64{0.0101, 0.0202, 0.0305, 0.0408}

	risk, err := Summarize(simple, logret)
	require.NoError(t, err)

	assert.Equal(t, 0.0, risk.ProbLoss)
	assert.Less(t, risk.VaR95, 0.0)
}

func TestSummarizeDimensionMismatch(t *testing.T) {
	_, err := Summarize([]float64{0.1}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Summarize(nil, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

// 표본이 20개 미만이면 95 백분위수가 최대 손실과 같아질 수 있음
// 정렬된 표본의 보간 백분위수는 최대값을 넘지 않으므로 tail은 항상 비지 않음
func TestSummarizeSmallSamples(t *testing.T) {
	for n := 2; n < 20; n++ {
		logReturns := make([]float64, n)
		simpleReturns := make([]float64, n)
		for i := 0; i < n; i++ {
			logReturns[i] = -0.3 + 0.05*float64(i)
			simpleReturns[i] = math.Exp(logReturns[i]) - 1
		}

		summary, err := Summarize(simpleReturns, logReturns)
		require.NoError(t, err, "n=%d", n)
		assert.False(t, math.IsNaN(summary.VaR95), "n=%d", n)
		assert.GreaterOrEqual(t, summary.CVaR95, summary.VaR95, "n=%d", n)

		// 최대 손실 = -최소 로그수익률이 tail에 포함됨
		assert.LessOrEqual(t, summary.CVaR95, -logReturns[0]+1e-12, "n=%d", n)
	}
}

func TestPathPercentiles(t *testing.T) {
	paths := [][]float64{
		{100, 100, 100, 100},
		{90, 100, 110, 120},
	}

	bands := PathPercentiles(paths, []float64{5, 50, 95})
	require.Len(t, bands, 3)
	require.Len(t, bands[0], 2)

	// t=0은 모두 같은 값
	assert.Equal(t, 100.0, bands[0][0])
	assert.Equal(t, 100.0, bands[2][0])

	// t=1 중앙값은 100과 110 사이
	assert.InDelta(t, 105.0, bands[1][1], 1e-12)
	assert.Less(t, bands[0][1], bands[2][1])
}
