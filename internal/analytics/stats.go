package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// =============================================================================
// Distribution Statistics
// =============================================================================

// Skewness 표본 왜도 (편향 보정)
func Skewness(returns []float64) float64 {
	if len(returns) < 3 {
		return Undefined()
	}
	return stat.Skew(returns, nil)
}

// Kurtosis 표본 초과 첨도 (정규분포 = 0)
func Kurtosis(returns []float64) float64 {
	if len(returns) < 4 {
		return Undefined()
	}
	return stat.ExKurtosis(returns, nil)
}

// JarqueBeraPValue 정규성 검정 p-value
// JB = n/6·(S² + K²/4), 자유도 2의 카이제곱 분포 상단 꼬리
// 모멘트는 모집단 기준 (편향 보정 없음)
func JarqueBeraPValue(returns []float64) float64 {
	n := len(returns)
	if n < 4 {
		return Undefined()
	}

	mean := stat.Mean(returns, nil)

	var m2, m3, m4 float64
	for _, r := range returns {
		d := r - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	fn := float64(n)
	m2 /= fn
	m3 /= fn
	m4 /= fn

	if m2 == 0 {
		return Undefined()
	}

	skew := m3 / (m2 * math.Sqrt(m2))
	exKurt := m4/(m2*m2) - 3

	jb := fn / 6 * (skew*skew + exKurt*exKurt/4)

	chi2 := distuv.ChiSquared{K: 2}
	return chi2.Survival(jb)
}
