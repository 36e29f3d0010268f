package portfolio

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wonny/folio/internal/marketdata"
)

// =============================================================================
// Portfolio - 티커/비중 보유 구조
// ⭐ SSOT: 자산 순서는 Tickers 슬라이스가 유일한 기준 (맵 순회 순서 의존 금지)
// =============================================================================

var (
	ErrEmptyPortfolio = errors.New("portfolio must hold at least one ticker")
	ErrLengthMismatch = errors.New("number of weights must match number of tickers")
	ErrInvalidWeights = errors.New("weights must be non-negative with a positive sum")
)

// Portfolio 정규화된 포트폴리오 (비중 합 = 1.0)
type Portfolio struct {
	Tickers []string  `json:"tickers"`
	Weights []float64 `json:"weights"`
}

// New builds a portfolio, normalizing weights to sum to 1.0
// 음수 비중(공매도)은 허용하지 않음
func New(tickers []string, weights []float64) (*Portfolio, error) {
	if len(tickers) == 0 {
		return nil, ErrEmptyPortfolio
	}
	if len(tickers) != len(weights) {
		return nil, fmt.Errorf("%w: %d tickers, %d weights", ErrLengthMismatch, len(tickers), len(weights))
	}

	var sum float64
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidWeights, w)
		}
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: sum=%v", ErrInvalidWeights, sum)
	}

	p := &Portfolio{
		Tickers: make([]string, len(tickers)),
		Weights: make([]float64, len(weights)),
	}
	for i, ticker := range tickers {
		p.Tickers[i] = strings.ToUpper(strings.TrimSpace(ticker))
		p.Weights[i] = weights[i] / sum
	}

	return p, nil
}

// Parse builds a portfolio from comma-separated ticker/weight strings
// 예: "SPY,TLT,GLD" / "0.5,0.3,0.2"
func Parse(tickerCSV, weightCSV string) (*Portfolio, error) {
	rawTickers := strings.Split(tickerCSV, ",")
	tickers := make([]string, 0, len(rawTickers))
	for _, t := range rawTickers {
		t = strings.TrimSpace(t)
		if t != "" {
			tickers = append(tickers, t)
		}
	}

	rawWeights := strings.Split(weightCSV, ",")
	weights := make([]float64, 0, len(rawWeights))
	for _, w := range rawWeights {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		var value float64
		if _, err := fmt.Sscanf(w, "%g", &value); err != nil {
			return nil, fmt.Errorf("parse weight %q: %w", w, err)
		}
		weights = append(weights, value)
	}

	return New(tickers, weights)
}

// NumAssets returns the number of holdings
func (p *Portfolio) NumAssets() int {
	return len(p.Tickers)
}

// Weight returns the weight of the i-th holding
func (p *Portfolio) Weight(i int) float64 {
	return p.Weights[i]
}

// ValueSeries computes the weighted portfolio value series from aligned closes
// value_t = Σ_i weight_i * close_{t,i}
func (p *Portfolio) ValueSeries(aligned *marketdata.AlignedCloses) ([]float64, error) {
	if err := p.checkAlignment(aligned); err != nil {
		return nil, err
	}

	values := make([]float64, aligned.NumDates())
	for t, row := range aligned.Prices {
		var v float64
		for i, w := range p.Weights {
			v += w * row[i]
		}
		values[t] = v
	}
	return values, nil
}

// ReturnSeries computes the weighted daily simple-return series
// r_t = Σ_i weight_i * (close_{t,i}/close_{t-1,i} - 1)
func (p *Portfolio) ReturnSeries(aligned *marketdata.AlignedCloses) ([]float64, error) {
	if err := p.checkAlignment(aligned); err != nil {
		return nil, err
	}
	if aligned.NumDates() < 2 {
		return nil, fmt.Errorf("need at least 2 aligned dates, got %d", aligned.NumDates())
	}

	returns := make([]float64, aligned.NumDates()-1)
	for t := 1; t < aligned.NumDates(); t++ {
		var r float64
		for i, w := range p.Weights {
			r += w * (aligned.Prices[t][i]/aligned.Prices[t-1][i] - 1)
		}
		returns[t-1] = r
	}
	return returns, nil
}

func (p *Portfolio) checkAlignment(aligned *marketdata.AlignedCloses) error {
	if aligned == nil {
		return errors.New("nil aligned closes")
	}
	if aligned.NumAssets() != p.NumAssets() {
		return fmt.Errorf("%w: portfolio has %d assets, aligned data has %d",
			ErrLengthMismatch, p.NumAssets(), aligned.NumAssets())
	}
	for i, ticker := range p.Tickers {
		if aligned.Tickers[i] != ticker {
			return fmt.Errorf("asset order mismatch at %d: portfolio %s, data %s",
				i, ticker, aligned.Tickers[i])
		}
	}
	return nil
}
