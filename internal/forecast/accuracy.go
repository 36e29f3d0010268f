package forecast

import (
	"fmt"
	"math"
)

// =============================================================================
// Accuracy Report
// =============================================================================

// AccuracyReport 검증 세트 정확도 리포트
type AccuracyReport struct {
	SampleCount int     `json:"sample_count"`
	MAE         float64 `json:"mae"`
	RMSE        float64 `json:"rmse"`
	MeanError   float64 `json:"mean_error"` // 편향 (bias)
	HitRate     float64 `json:"hit_rate"`   // 방향 적중률
}

// CalculateAccuracy 예측/실측 비교 리포트 생성
// 방향 적중: 직전 종가(윈도우 마지막 값) 대비 상승/하락 방향 일치 여부
func CalculateAccuracy(ds *Dataset, predictions []float64) (*AccuracyReport, error) {
	if len(predictions) != len(ds.Y) {
		return nil, fmt.Errorf("%w: %d predictions, %d actuals",
			ErrWindowMismatch, len(predictions), len(ds.Y))
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("%w: empty validation set", ErrInsufficientHistory)
	}

	var sumAbsError, sumSqError, sumError float64
	var hitCount int

	for i, pred := range predictions {
		actual := ds.Y[i]
		err := actual - pred
		sumAbsError += math.Abs(err)
		sumSqError += err * err
		sumError += err

		prev := ds.X[i][len(ds.X[i])-1]
		if (pred >= prev) == (actual >= prev) {
			hitCount++
		}
	}

	n := float64(len(predictions))
	return &AccuracyReport{
		SampleCount: len(predictions),
		MAE:         sumAbsError / n,
		RMSE:        math.Sqrt(sumSqError / n),
		MeanError:   sumError / n,
		HitRate:     float64(hitCount) / n,
	}, nil
}
