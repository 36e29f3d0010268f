package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// =============================================================================
// Price Predictor - 이동 윈도우 선형회귀
// =============================================================================

// DefaultWindow 기본 입력 윈도우 (직전 30 거래일 종가)
const DefaultWindow = 30

// TrainRatio 학습/검증 분할 비율
const TrainRatio = 0.8

var (
	ErrInsufficientHistory = errors.New("insufficient history for training")
	ErrWindowMismatch      = errors.New("input length does not match window")
)

// Model 학습된 선형회귀 모델
// 예측: ŷ = intercept + Σ coef[k]·close[t-window+k]
type Model struct {
	Window    int       `json:"window"`
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
}

// Dataset 윈도우 슬라이딩 데이터셋
// X[i] = 연속 window개 종가, Y[i] = 그 다음 날 종가
type Dataset struct {
	X [][]float64
	Y []float64
}

// MakeDataset 종가 시계열에서 학습 데이터셋 생성
func MakeDataset(closes []float64, window int) (*Dataset, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be > 0, got %d", window)
	}
	n := len(closes) - window
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d closes, window %d", ErrInsufficientHistory, len(closes), window)
	}

	ds := &Dataset{
		X: make([][]float64, n),
		Y: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		ds.X[i] = closes[i : i+window]
		ds.Y[i] = closes[i+window]
	}
	return ds, nil
}

// Split 시간 순서 유지하며 학습/검증 분할 (셔플 없음)
func (ds *Dataset) Split(ratio float64) (train, test *Dataset) {
	split := int(float64(len(ds.X)) * ratio)
	train = &Dataset{X: ds.X[:split], Y: ds.Y[:split]}
	test = &Dataset{X: ds.X[split:], Y: ds.Y[split:]}
	return train, test
}

// Train 종가 시계열로 모델 학습, 검증 세트 반환
// 최소 요건: 학습 샘플 수 ≥ window+1 (정규방정식이 과소결정되지 않도록)
func Train(closes []float64, window int) (*Model, *Dataset, error) {
	ds, err := MakeDataset(closes, window)
	if err != nil {
		return nil, nil, err
	}

	train, test := ds.Split(TrainRatio)
	if len(train.X) < window+1 {
		return nil, nil, fmt.Errorf("%w: %d training samples for window %d",
			ErrInsufficientHistory, len(train.X), window)
	}

	model, err := fit(train, window)
	if err != nil {
		return nil, nil, err
	}
	return model, test, nil
}

// fit 절편 포함 최소제곱 적합 (QR 분해)
func fit(train *Dataset, window int) (*Model, error) {
	rows := len(train.X)
	cols := window + 1 // 절편 열 포함

	design := mat.NewDense(rows, cols, nil)
	for i, x := range train.X {
		design.Set(i, 0, 1)
		for k, v := range x {
			design.Set(i, k+1, v)
		}
	}
	target := mat.NewDense(rows, 1, nil)
	for i, y := range train.Y {
		target.Set(i, 0, y)
	}

	var qr mat.QR
	qr.Factorize(design)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, target); err != nil {
		// mat.Condition은 수치적 경고 — 해는 계산됨
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("least squares fit failed: %w", err)
		}
	}

	model := &Model{
		Window:    window,
		Intercept: solution.At(0, 0),
		Coef:      make([]float64, window),
	}
	for k := 0; k < window; k++ {
		model.Coef[k] = solution.At(k+1, 0)
	}
	return model, nil
}

// Predict 직전 window개 종가로 다음 종가 예측
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != m.Window {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrWindowMismatch, len(x), m.Window)
	}
	y := m.Intercept
	for k, v := range x {
		y += m.Coef[k] * v
	}
	return y, nil
}

// PredictAll 검증 세트 전체 예측
func (m *Model) PredictAll(ds *Dataset) ([]float64, error) {
	predictions := make([]float64, len(ds.X))
	for i, x := range ds.X {
		p, err := m.Predict(x)
		if err != nil {
			return nil, err
		}
		predictions[i] = p
	}
	return predictions, nil
}
