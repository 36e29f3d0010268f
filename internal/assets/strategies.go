package assets

import (
	"fmt"
	"sort"
)

// =============================================================================
// Named Allocation Templates
// =============================================================================

// Strategy 사전 정의 배분 템플릿
type Strategy struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Assets      map[string]float64 `json:"assets"` // ticker → weight
}

// strategies 고정 템플릿 (비중 합 = 1.0)
var strategies = []Strategy{
	{
		Name:        "All Weather (Ray Dalio)",
		Description: "Designed to perform well in all economic environments",
		Assets: map[string]float64{
			"TLT": 0.40,
			"SPY": 0.30,
			"IEF": 0.15,
			"GLD": 0.075,
			"DBC": 0.075,
		},
	},
	{
		Name:        "60/40 Portfolio",
		Description: "Traditional balanced portfolio with 60% stocks, 40% bonds",
		Assets: map[string]float64{
			"SPY": 0.60,
			"AGG": 0.40,
		},
	},
	{
		Name:        "Permanent Portfolio",
		Description: "Conservative portfolio designed for all economic conditions",
		Assets: map[string]float64{
			"SPY": 0.25,
			"TLT": 0.25,
			"GLD": 0.25,
			"SHY": 0.25,
		},
	},
	{
		Name:        "Three Fund Portfolio",
		Description: "Simple diversified portfolio using three total market funds",
		Assets: map[string]float64{
			"VTI":  0.50,
			"VXUS": 0.30,
			"BND":  0.20,
		},
	},
	{
		Name:        "Golden Butterfly",
		Description: "Aggressive alternative to Permanent Portfolio with higher stock allocation",
		Assets: map[string]float64{
			"SPY": 0.20,
			"IWN": 0.20,
			"TLT": 0.20,
			"SHY": 0.20,
			"GLD": 0.20,
		},
	},
}

// Strategies returns all templates (이름순 정렬)
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindStrategy looks up a template by name
func FindStrategy(name string) (Strategy, error) {
	for _, s := range strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("unknown strategy: %q", name)
}

// TickersAndWeights returns the template holdings as ordered slices
// ⭐ 맵 순회 순서 의존 제거: 티커 정렬로 결정적 순서 보장
func (s Strategy) TickersAndWeights() ([]string, []float64) {
	tickers := make([]string, 0, len(s.Assets))
	for ticker := range s.Assets {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	weights := make([]float64, len(tickers))
	for i, ticker := range tickers {
		weights[i] = s.Assets[ticker]
	}
	return tickers, weights
}
