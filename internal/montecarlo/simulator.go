package montecarlo

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Simulator 상관 GBM(기하 브라운 운동) 시뮬레이터
// ⭐ 순수 계산기: 데이터 수집/포트폴리오 구성은 상위 레이어에서 조립
type Simulator struct {
	config Config
	rng    *rand.Rand
}

// NewSimulator 새 시뮬레이터 생성
// 시드가 0이면 시각 기반 (재현 불가), 0이 아니면 결정적
func NewSimulator(config Config) *Simulator {
	var rng *rand.Rand
	if config.Seed != 0 {
		rng = rand.New(rand.NewSource(config.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Simulator{
		config: config,
		rng:    rng,
	}
}

// Simulate 상관 GBM 자산 경로 시뮬레이션 실행
//
// 알고리즘:
//  1. cov = L·Lᵗ 콜레스키 분해 (양의 정부호 아니면 실패)
//  2. drift[i] = mu[i] - 0.5·cov[i][i]  (Itō 보정)
//  3. 각 시점 t: Z ~ N(0,1) 독립 추출, correlated = L·Z,
//     A[:,t,:] = A[:,t-1,:] · exp(drift + correlated)
//  4. 포트폴리오 경로 = Σ_i weights[i]·A[i,t,n]
//
// 스텝은 일 단위(Δt=1 거래일) — 연환산 계수 없음.
// 다른 스텝 크기가 필요하면 호출 전에 mu/cov를 스케일링할 것.
func (s *Simulator) Simulate(input Input) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	nAssets := len(input.Tickers)
	T := s.config.Horizon
	N := s.config.NumSimulations

	// 1. 콜레스키 분해 — 특이 공분산은 복구 불가능한 전제조건 위반
	var chol mat.Cholesky
	if ok := chol.Factorize(input.Cov); !ok {
		return nil, ErrNotPositiveDefinite
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	// 2. Itō 보정 드리프트
	drift := make([]float64, nAssets)
	for i := 0; i < nAssets; i++ {
		drift[i] = input.Mean[i] - 0.5*input.Cov.At(i, i)
	}

	// 경로 저장 공간: [자산][시점 0..T][시뮬레이션]
	assetPaths := make([][][]float64, nAssets)
	for i := 0; i < nAssets; i++ {
		assetPaths[i] = make([][]float64, T+1)
		row := make([]float64, N)
		for n := 0; n < N; n++ {
			row[n] = input.StartPrices[i] // t=0은 시작가 그대로 (노이즈 없음)
		}
		assetPaths[i][0] = row
	}

	// 3. 자산 가격 경로 시뮬레이션
	z := make([][]float64, nAssets)
	for i := range z {
		z[i] = make([]float64, N)
	}

	for t := 1; t <= T; t++ {
		// 독립 표준정규 추출 (자산 × 시뮬레이션)
		for i := 0; i < nAssets; i++ {
			for n := 0; n < N; n++ {
				z[i][n] = s.rng.NormFloat64()
			}
		}

		// correlated = L·Z (하삼각 곱으로 상관 구조 부여)
		for i := 0; i < nAssets; i++ {
			prev := assetPaths[i][t-1]
			curr := make([]float64, N)
			for n := 0; n < N; n++ {
				var corr float64
				for j := 0; j <= i; j++ {
					corr += lower.At(i, j) * z[j][n]
				}
				curr[n] = prev[n] * math.Exp(drift[i]+corr)
			}
			assetPaths[i][t] = curr
		}
	}

	// 4. 포트폴리오 경로 집계
	portfolioPaths := make([][]float64, T+1)
	for t := 0; t <= T; t++ {
		row := make([]float64, N)
		for n := 0; n < N; n++ {
			var v float64
			for i := 0; i < nAssets; i++ {
				v += input.Weights[i] * assetPaths[i][t][n]
			}
			row[n] = v
		}
		portfolioPaths[t] = row
	}

	// 말단 수익률
	terminalReturns := make([]float64, N)
	terminalLogReturns := make([]float64, N)
	for n := 0; n < N; n++ {
		ratio := portfolioPaths[T][n] / portfolioPaths[0][n]
		terminalReturns[n] = ratio - 1
		terminalLogReturns[n] = math.Log(ratio)
	}

	risk, err := Summarize(terminalReturns, terminalLogReturns)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tickers:            append([]string(nil), input.Tickers...),
		Config:             s.config,
		RunDate:            time.Now(),
		AssetPaths:         assetPaths,
		PortfolioPaths:     portfolioPaths,
		Dates:              businessDates(input.StartDate, T+1),
		TerminalReturns:    terminalReturns,
		TerminalLogReturns: terminalLogReturns,
		Risk:               *risk,
	}, nil
}

// businessDates 기준일부터 영업일 periods개 생성 (주말 제외)
// 기준일이 주말이면 다음 영업일부터 시작
func businessDates(start time.Time, periods int) []time.Time {
	dates := make([]time.Time, 0, periods)

	d := start
	for isWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}

	for len(dates) < periods {
		dates = append(dates, d)
		d = d.AddDate(0, 0, 1)
		for isWeekend(d) {
			d = d.AddDate(0, 0, 1)
		}
	}
	return dates
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
