package montecarlo

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// =============================================================================
// Monte Carlo Types
// =============================================================================

var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrDimensionMismatch   = errors.New("input dimension mismatch")
	ErrNotPositiveDefinite = errors.New("covariance matrix is not positive definite")
	ErrEmptyTail           = errors.New("empty loss tail")
)

// Config Monte Carlo 시뮬레이션 설정
// ⭐ SSOT: 재현성을 위해 모든 설정을 명시적으로 기록
type Config struct {
	Horizon        int   `json:"horizon"`         // 시뮬레이션 기간 (거래일 수 T)
	NumSimulations int   `json:"num_simulations"` // 시뮬레이션 횟수 N
	Seed           int64 `json:"seed"`            // 재현성용 시드 (0=랜덤)
}

// DefaultConfig 기본 시뮬레이션 설정 (1년, 5000회)
func DefaultConfig() Config {
	return Config{
		Horizon:        252,
		NumSimulations: 5000,
		Seed:           0,
	}
}

// Validate 설정 유효성 검사 (계산 시작 전 fail-closed)
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: Horizon must be > 0, got %d", ErrInvalidConfig, c.Horizon)
	}
	if c.NumSimulations <= 0 {
		return fmt.Errorf("%w: NumSimulations must be > 0, got %d", ErrInvalidConfig, c.NumSimulations)
	}
	return nil
}

// Input 시뮬레이션 입력 (상위 레이어에서 조립해서 전달)
// ⭐ 자산 순서는 Tickers 순서로 고정 — Mean/Cov/StartPrices/Weights 모두 동일 순서
type Input struct {
	Tickers     []string      // 자산 순서 기준
	StartPrices []float64     // S0: 마지막 관측 종가
	Mean        []float64     // 일별 로그수익률 평균 (드리프트 상한 적용 후)
	Cov         *mat.SymDense // 일별 로그수익률 공분산
	Weights     []float64     // 정규화된 비중 (합=1)
	StartDate   time.Time     // 시뮬레이션 기준일 (마지막 관측일)
}

// Validate 입력 차원/값 검사
func (in Input) Validate() error {
	n := len(in.Tickers)
	if n == 0 {
		return fmt.Errorf("%w: no tickers", ErrDimensionMismatch)
	}
	if len(in.StartPrices) != n || len(in.Mean) != n || len(in.Weights) != n {
		return fmt.Errorf("%w: tickers=%d, startPrices=%d, mean=%d, weights=%d",
			ErrDimensionMismatch, n, len(in.StartPrices), len(in.Mean), len(in.Weights))
	}
	if in.Cov == nil {
		return fmt.Errorf("%w: nil covariance matrix", ErrDimensionMismatch)
	}
	if r := in.Cov.SymmetricDim(); r != n {
		return fmt.Errorf("%w: covariance is %dx%d, expected %dx%d", ErrDimensionMismatch, r, r, n, n)
	}
	for i, s := range in.StartPrices {
		if s <= 0 {
			return fmt.Errorf("start price for %s must be > 0, got %v", in.Tickers[i], s)
		}
	}
	return nil
}

// RiskSummary 시뮬레이션 말단 분포의 리스크 지표
// ⭐ VaR/CVaR는 손실 기준 (양수 = 손실): loss = -terminal_log_return
// 과거 데이터 기반 분석 엔진의 수익률 기준 VaR와 부호 규약이 다름 (둘 다 유지)
type RiskSummary struct {
	VaR95    float64 `json:"var_95"`   // 손실 분포의 95 백분위수
	CVaR95   float64 `json:"cvar_95"`  // VaR 이상 손실의 평균 (Expected Shortfall)
	ProbLoss float64 `json:"prob_loss"` // 단순수익률 < 0 비율
	Median   float64 `json:"median"`   // 단순수익률 중앙값
	Best     float64 `json:"best"`     // 최고 단순수익률
	Worst    float64 `json:"worst"`    // 최저 단순수익률
}

// Result 시뮬레이션 결과 (호출마다 생성, 생성 후 불변)
type Result struct {
	Tickers []string  `json:"tickers"`
	Config  Config    `json:"config"` // 재현성용 설정 기록
	RunDate time.Time `json:"run_date"`

	// AssetPaths[i][t][n] = 자산 i, 시점 t, 시뮬레이션 n의 가격
	AssetPaths [][][]float64 `json:"-"`

	// PortfolioPaths[t][n] = 비중 가중 포트폴리오 가치
	PortfolioPaths [][]float64 `json:"-"`

	// Dates 시간축 (T+1개 영업일, StartDate 포함)
	Dates []time.Time `json:"dates"`

	TerminalReturns    []float64 `json:"-"` // 단순수익률 (N개)
	TerminalLogReturns []float64 `json:"-"` // 로그수익률 (N개)

	Risk RiskSummary `json:"risk"`
}
