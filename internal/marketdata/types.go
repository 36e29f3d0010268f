package marketdata

import (
	"errors"
	"time"
)

// =============================================================================
// Price Data Types
// =============================================================================

var (
	ErrNoData        = errors.New("no price data")
	ErrUnsortedDates = errors.New("price dates must be strictly increasing")
)

// Bar 일봉 (OHLCV)
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries 종목별 일봉 시계열
// ⭐ 날짜는 오름차순, 결측 제거 후 상태 (코어에서는 읽기 전용)
type PriceSeries struct {
	Ticker string `json:"ticker"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Closes returns the close price column
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates returns the date column
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Date
	}
	return dates
}

// LastClose returns the most recent close price
func (s *PriceSeries) LastClose() (float64, error) {
	if len(s.Bars) == 0 {
		return 0, ErrNoData
	}
	return s.Bars[len(s.Bars)-1].Close, nil
}

// Validate checks series invariants (날짜 오름차순, 양수 종가)
func (s *PriceSeries) Validate() error {
	if len(s.Bars) == 0 {
		return ErrNoData
	}
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return ErrUnsortedDates
		}
	}
	return nil
}
