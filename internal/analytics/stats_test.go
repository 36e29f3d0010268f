package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkewnessSymmetric(t *testing.T) {
	// 대칭 분포의 왜도 ≈ 0
	symmetric := []float64{-0.03, -0.02, -0.01, 0.0, 0.01, 0.02, 0.03}
	assert.InDelta(t, 0.0, Skewness(symmetric), 1e-12)

	// 오른쪽 꼬리가 긴 분포는 양의 왜도
	rightSkewed := []float64{-0.01, -0.01, -0.01, -0.01, 0.10}
	assert.Greater(t, Skewness(rightSkewed), 0.0)
}

func TestKurtosisUniform(t *testing.T) {
	// 균등 분포의 초과 첨도 ≈ -1.2
	uniform := make([]float64, 1000)
	for i := range uniform {
		uniform[i] = float64(i) / 1000
	}
	assert.InDelta(t, -1.2, Kurtosis(uniform), 0.05)
}

func TestJarqueBeraPValue(t *testing.T) {
	// 정규 표본: p-value는 (0,1) 구간, 기각되지 않아야 정상
	rng := rand.New(rand.NewSource(11))
	normal := make([]float64, 2000)
	for i := range normal {
		normal[i] = rng.NormFloat64()
	}
	p := JarqueBeraPValue(normal)
	assert.Greater(t, p, 1e-4)
	assert.LessOrEqual(t, p, 1.0)

	// 강하게 치우친 분포: 정규성 기각 (p ≈ 0)
	skewed := make([]float64, 1000)
	for i := range skewed {
		v := rng.Float64()
		skewed[i] = v * v * v * v
	}
	assert.Less(t, JarqueBeraPValue(skewed), 0.001)
}

func TestStatisticsDegenerateInputs(t *testing.T) {
	assert.True(t, IsUndefined(Skewness([]float64{0.1, 0.2})))
	assert.True(t, IsUndefined(Kurtosis([]float64{0.1, 0.2, 0.3})))
	assert.True(t, IsUndefined(JarqueBeraPValue([]float64{0.1})))

	// 상수 시계열: 분산 0 → 모멘트 비율 정의 불가
	constant := []float64{0.01, 0.01, 0.01, 0.01, 0.01}
	assert.True(t, IsUndefined(JarqueBeraPValue(constant)))
}
