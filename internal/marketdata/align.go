package marketdata

import (
	"fmt"
	"sort"
	"time"
)

// AlignedCloses 공통 날짜로 정렬된 종가 행렬
// ⭐ 자산 순서는 명시적 티커 리스트로만 결정 (맵 순회 순서 의존 금지)
type AlignedCloses struct {
	Tickers []string    `json:"tickers"`
	Dates   []time.Time `json:"dates"`
	// Prices[t][i] = Tickers[i]의 Dates[t] 종가
	Prices [][]float64 `json:"prices"`
}

// NumDates returns the number of aligned observation dates
func (a *AlignedCloses) NumDates() int {
	return len(a.Dates)
}

// NumAssets returns the number of assets
func (a *AlignedCloses) NumAssets() int {
	return len(a.Tickers)
}

// Column returns the close series of one asset
func (a *AlignedCloses) Column(i int) []float64 {
	col := make([]float64, len(a.Prices))
	for t := range a.Prices {
		col[t] = a.Prices[t][i]
	}
	return col
}

// LastRow returns the most recent close per asset (시뮬레이션 시작가)
func (a *AlignedCloses) LastRow() []float64 {
	if len(a.Prices) == 0 {
		return nil
	}
	last := a.Prices[len(a.Prices)-1]
	out := make([]float64, len(last))
	copy(out, last)
	return out
}

// Align inner-joins price series on dates present in every asset
// 한 자산이라도 결측인 날짜는 제거 (inner join)
func Align(data map[string]*PriceSeries, tickers []string) (*AlignedCloses, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to align")
	}

	for _, ticker := range tickers {
		series, ok := data[ticker]
		if !ok || series == nil {
			return nil, fmt.Errorf("missing price series for %s", ticker)
		}
		if len(series.Bars) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
		}
	}

	// 날짜별 등장 횟수 집계
	type dateKey int64
	counts := make(map[dateKey]int)
	closeByDate := make([]map[dateKey]float64, len(tickers))

	for i, ticker := range tickers {
		closeByDate[i] = make(map[dateKey]float64, len(data[ticker].Bars))
		for _, bar := range data[ticker].Bars {
			key := dateKey(bar.Date.Unix())
			if _, seen := closeByDate[i][key]; seen {
				continue // 중복 날짜 방어
			}
			closeByDate[i][key] = bar.Close
			counts[key]++
		}
	}

	// 모든 자산에 존재하는 날짜만 유지
	var common []dateKey
	for key, n := range counts {
		if n == len(tickers) {
			common = append(common, key)
		}
	}
	sort.Slice(common, func(a, b int) bool { return common[a] < common[b] })

	if len(common) == 0 {
		return nil, fmt.Errorf("no overlapping dates across %d tickers", len(tickers))
	}

	aligned := &AlignedCloses{
		Tickers: append([]string(nil), tickers...),
		Dates:   make([]time.Time, len(common)),
		Prices:  make([][]float64, len(common)),
	}

	for t, key := range common {
		aligned.Dates[t] = time.Unix(int64(key), 0).UTC()
		row := make([]float64, len(tickers))
		for i := range tickers {
			row[i] = closeByDate[i][key]
		}
		aligned.Prices[t] = row
	}

	return aligned, nil
}
