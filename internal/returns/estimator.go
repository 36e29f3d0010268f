package returns

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/folio/internal/marketdata"
)

// =============================================================================
// Return Estimator - 일별 수익률 / 평균 벡터 / 공분산 행렬
// =============================================================================

// Kind 수익률 계산 방식
type Kind string

const (
	Simple Kind = "simple" // (P1 - P0) / P0
	Log    Kind = "log"    // ln(P1 / P0)
)

// DefaultDriftCap GBM 드리프트 일별 상한
// 과거 강세장의 드리프트를 수년 앞으로 복리 적용하는 과도한 낙관 방지 (의도된 편향)
const DefaultDriftCap = 0.0003

var (
	ErrNoTickers           = errors.New("at least one ticker is required")
	ErrInsufficientHistory = errors.New("insufficient overlapping price history")
)

// Estimate 정렬된 수익률 통계
// ⭐ SSOT: 자산 순서는 Tickers 슬라이스 순서 고정
type Estimate struct {
	Kind    Kind
	Tickers []string

	// Series[i][t] = Tickers[i]의 t번째 일별 수익률
	Series [][]float64

	// Mean[i] = 일평균 수익률
	Mean []float64

	// Cov 일별 수익률 공분산 행렬 (대칭, 표본 공분산 ddof=1)
	Cov *mat.SymDense
}

// FromAligned derives daily returns and their joint statistics
// 단일 자산은 1×1 퇴화 공분산(분산)으로 처리
func FromAligned(aligned *marketdata.AlignedCloses, kind Kind) (*Estimate, error) {
	if aligned == nil || aligned.NumAssets() == 0 {
		return nil, ErrNoTickers
	}

	n := aligned.NumAssets()
	obs := aligned.NumDates() - 1 // 수익률 관측치 수

	// 공분산(ddof=1)에는 최소 2개 관측치 = 3개 공통 날짜 필요
	if obs < 2 {
		return nil, fmt.Errorf("%w: %d overlapping dates across %d tickers",
			ErrInsufficientHistory, aligned.NumDates(), n)
	}

	est := &Estimate{
		Kind:    kind,
		Tickers: append([]string(nil), aligned.Tickers...),
		Series:  make([][]float64, n),
		Mean:    make([]float64, n),
	}

	// 관측치 행렬 (행=시간, 열=자산) — gonum 공분산 입력 형식
	samples := mat.NewDense(obs, n, nil)

	for i := 0; i < n; i++ {
		series := make([]float64, obs)
		for t := 1; t <= obs; t++ {
			prev := aligned.Prices[t-1][i]
			curr := aligned.Prices[t][i]
			if prev <= 0 || curr <= 0 {
				return nil, fmt.Errorf("non-positive price for %s at observation %d", aligned.Tickers[i], t)
			}
			if kind == Log {
				series[t-1] = math.Log(curr / prev)
			} else {
				series[t-1] = curr/prev - 1
			}
			samples.Set(t-1, i, series[t-1])
		}
		est.Series[i] = series
		est.Mean[i] = stat.Mean(series, nil)
	}

	cov := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(cov, samples, nil)
	est.Cov = cov

	return est, nil
}

// NumAssets returns the number of assets
func (e *Estimate) NumAssets() int {
	return len(e.Tickers)
}

// NumObservations returns the length of each return series
func (e *Estimate) NumObservations() int {
	if len(e.Series) == 0 {
		return 0
	}
	return len(e.Series[0])
}

// CappedMean returns the mean vector with each element capped at limit
// GBM 시뮬레이션 입력 전용 (문서화된 의도적 편향)
func (e *Estimate) CappedMean(limit float64) []float64 {
	capped := make([]float64, len(e.Mean))
	for i, m := range e.Mean {
		capped[i] = math.Min(m, limit)
	}
	return capped
}

// Variance returns the diagonal of the covariance matrix
func (e *Estimate) Variance() []float64 {
	n := e.NumAssets()
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = e.Cov.At(i, i)
	}
	return diag
}

// Volatility returns per-asset daily standard deviation
func (e *Estimate) Volatility() []float64 {
	diag := e.Variance()
	for i, v := range diag {
		diag[i] = math.Sqrt(v)
	}
	return diag
}
