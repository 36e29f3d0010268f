package analytics

import (
	"errors"
	"math"
	"time"

	"github.com/wonny/folio/internal/assets"
)

// =============================================================================
// Analytics Types
// =============================================================================

var (
	ErrNoReturns      = errors.New("no return observations")
	ErrLengthMismatch = errors.New("length mismatch")
)

// TradingDays 연환산 기준 거래일 수 (고정 상수, 설정 불가)
const TradingDays = 252.0

// Undefined 정의 불가 지표 센티널 (0분산 샤프, 0낙폭 칼마 등)
// ⭐ 퇴화 수치 케이스는 에러가 아니라 센티널로 처리 — §에러 분류 참조
func Undefined() float64 {
	return math.NaN()
}

// IsUndefined 센티널 여부 확인
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// BasicStats 기본 통계
type BasicStats struct {
	TotalReturn          float64   // (1+r)의 누적곱 - 1
	AnnualizedReturn     float64   // mean(daily) × 252
	AnnualizedVolatility float64   // std(daily) × √252
	CumulativeReturn     []float64 // 일별 누적 수익률 곡선
}

// RiskAdjusted 위험조정 수익률 지표
type RiskAdjusted struct {
	Sharpe  float64
	Sortino float64
	Calmar  float64
}

// RiskMetrics 리스크 지표
// ⭐ VaR95는 일별 수익률 분포의 5 백분위수 (수익률 기준, 보통 음수)
// Monte Carlo 엔진의 손실 기준 VaR와 부호 규약이 다름 — 둘 다 그대로 유지
type RiskMetrics struct {
	MaxDrawdown float64 // 항상 ≤ 0
	VaR95       float64
	CVaR95      float64 // VaR 이하 수익률의 평균
	Beta        float64 // 벤치마크 (또는 동일가중 프록시) 대비
}

// Allocation 자산 배분 분석
type Allocation struct {
	ByCategory map[string]float64     // 카테고리별 비중 합
	Details    map[string]assets.Info // 티커별 메타데이터
}

// Statistical 분포 통계 검정
type Statistical struct {
	Skewness         float64
	Kurtosis         float64 // 초과 첨도 (정규분포 = 0)
	JarqueBeraPValue float64
}

// Diversification 분산투자 분석
type Diversification struct {
	PortfolioVariance    float64     // wᵗ·Cov·w (일별)
	DiversificationRatio float64     // Σw_i·σ_i / σ_p
	Correlation          [][]float64 // 자산 간 상관계수 행렬 (Tickers 순서)
}

// Components 자산별 구성요소 분해
// 모든 슬라이스는 Tickers와 동일 순서
type Components struct {
	IndividualReturns  []float64 // 연환산 개별 수익률
	IndividualVols     []float64 // 연환산 개별 변동성
	WeightContribution []float64 // w_i × 연환산 수익률_i
	RiskContribution   []float64 // Euler 분해: 합 = 연환산 포트폴리오 변동성
}

// AnalysisReport 포트폴리오 분석 결과 (생성 후 불변)
type AnalysisReport struct {
	Tickers         []string
	Weights         []float64
	RiskFreeRate    float64
	Start           time.Time
	End             time.Time
	NumObservations int

	BasicStats      BasicStats
	RiskAdjusted    RiskAdjusted
	RiskMetrics     RiskMetrics
	Allocation      Allocation
	Statistical     Statistical
	Diversification Diversification
	Components      Components
}
