package montecarlo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func twoAssetInput() Input {
	return Input{
		Tickers:     []string{"AAA", "BBB"},
		StartPrices: []float64{100, 50},
		Mean:        []float64{0.0004, 0.0002},
		Cov: mat.NewSymDense(2, []float64{
			0.0001, 0.00002,
			0.00002, 0.00009,
		}),
		Weights:   []float64{0.6, 0.4},
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestSimulatePathContinuityAtStart(t *testing.T) {
	sim := NewSimulator(Config{Horizon: 10, NumSimulations: 50, Seed: 7})

	result, err := sim.Simulate(twoAssetInput())
	require.NoError(t, err)

	// t=0은 시작가 그대로 (드리프트/노이즈 없음)
	for n := 0; n < 50; n++ {
		assert.Equal(t, 100.0, result.AssetPaths[0][0][n])
		assert.Equal(t, 50.0, result.AssetPaths[1][0][n])
		assert.InDelta(t, 0.6*100+0.4*50, result.PortfolioPaths[0][n], 1e-12)
	}
}

func TestSimulateDeterminism(t *testing.T) {
	input := twoAssetInput()
	cfg := Config{Horizon: 30, NumSimulations: 200, Seed: 42}

	r1, err := NewSimulator(cfg).Simulate(input)
	require.NoError(t, err)
	r2, err := NewSimulator(cfg).Simulate(input)
	require.NoError(t, err)

	// 동일 시드 + 동일 입력 ⇒ 비트 단위 동일 경로
	for i := range r1.AssetPaths {
		for tt := range r1.AssetPaths[i] {
			for n := range r1.AssetPaths[i][tt] {
				if r1.AssetPaths[i][tt][n] != r2.AssetPaths[i][tt][n] {
					t.Fatalf("path mismatch at asset=%d t=%d n=%d", i, tt, n)
				}
			}
		}
	}

	assert.Equal(t, r1.Risk.VaR95, r2.Risk.VaR95)
	assert.Equal(t, r1.Risk.CVaR95, r2.Risk.CVaR95)
}

func TestSimulateSeedsDiffer(t *testing.T) {
	input := twoAssetInput()

	r1, err := NewSimulator(Config{Horizon: 30, NumSimulations: 100, Seed: 1}).Simulate(input)
	require.NoError(t, err)
	r2, err := NewSimulator(Config{Horizon: 30, NumSimulations: 100, Seed: 2}).Simulate(input)
	require.NoError(t, err)

	assert.NotEqual(t, r1.PortfolioPaths[30][0], r2.PortfolioPaths[30][0])
}

func TestSimulateEndToEnd(t *testing.T) {
	// 2자산 시나리오: 형상, 양수성, 해석적 드리프트 일치
	input := twoAssetInput()
	sim := NewSimulator(Config{Horizon: 252, NumSimulations: 1000, Seed: 42})

	result, err := sim.Simulate(input)
	require.NoError(t, err)

	// 포트폴리오 경로 행렬 형상 (253, 1000)
	require.Len(t, result.PortfolioPaths, 253)
	require.Len(t, result.PortfolioPaths[0], 1000)
	require.Len(t, result.Dates, 253)
	require.Len(t, result.TerminalReturns, 1000)

	// 모든 값 양수 (GBM은 0에 도달하지 않음)
	for tt := range result.PortfolioPaths {
		for n := range result.PortfolioPaths[tt] {
			if result.PortfolioPaths[tt][n] <= 0 {
				t.Fatalf("non-positive portfolio value at t=%d n=%d", tt, n)
			}
		}
	}

	// 말단 수익률 평균 ≈ 가중 해석적 드리프트
	// E[S_T] = S0·exp(mu·T) (Itō 보정은 exp 기대값에서 상쇄)
	expected := (0.6*100*math.Exp(0.0004*252) + 0.4*50*math.Exp(0.0002*252)) / (0.6*100 + 0.4*50)
	var mean float64
	for _, r := range result.TerminalReturns {
		mean += r
	}
	mean /= float64(len(result.TerminalReturns))
	assert.InDelta(t, expected-1, mean, 0.02)
}

func TestSimulateSingularCovariance(t *testing.T) {
	input := twoAssetInput()
	// 완전 상관 (rank 1) — 양의 정부호 아님
	input.Cov = mat.NewSymDense(2, []float64{
		0.0001, 0.0001,
		0.0001, 0.0001,
	})

	_, err := NewSimulator(Config{Horizon: 10, NumSimulations: 10, Seed: 1}).Simulate(input)
	assert.ErrorIs(t, err, ErrNotPositiveDefinite)
}

func TestSimulateInvalidParameters(t *testing.T) {
	input := twoAssetInput()

	_, err := NewSimulator(Config{Horizon: 0, NumSimulations: 10, Seed: 1}).Simulate(input)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSimulator(Config{Horizon: 10, NumSimulations: -1, Seed: 1}).Simulate(input)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := twoAssetInput()
	bad.Weights = []float64{1.0}
	_, err = NewSimulator(Config{Horizon: 10, NumSimulations: 10, Seed: 1}).Simulate(bad)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	neg := twoAssetInput()
	neg.StartPrices = []float64{100, -5}
	_, err = NewSimulator(Config{Horizon: 10, NumSimulations: 10, Seed: 1}).Simulate(neg)
	assert.Error(t, err)
}

func TestSimulateSingleAsset(t *testing.T) {
	// 1×1 퇴화 공분산 (분산만 존재)
	input := Input{
		Tickers:     []string{"AAA"},
		StartPrices: []float64{100},
		Mean:        []float64{0.0003},
		Cov:         mat.NewSymDense(1, []float64{0.0001}),
		Weights:     []float64{1.0},
		StartDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	result, err := NewSimulator(Config{Horizon: 20, NumSimulations: 100, Seed: 3}).Simulate(input)
	require.NoError(t, err)
	assert.Len(t, result.PortfolioPaths, 21)
}

func TestBusinessDates(t *testing.T) {
	// 금요일 시작 → 다음은 월요일
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	dates := businessDates(friday, 3)

	require.Len(t, dates, 3)
	assert.Equal(t, time.Friday, dates[0].Weekday())
	assert.Equal(t, time.Monday, dates[1].Weekday())
	assert.Equal(t, time.Tuesday, dates[2].Weekday())

	// 토요일 시작 → 월요일부터
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	dates = businessDates(saturday, 2)
	assert.Equal(t, time.Monday, dates[0].Weekday())
}
