package scenario

import (
	"fmt"
	"sort"

	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/portfolio"
)

// =============================================================================
// Market Scenario Shocks - 순수 계산
// =============================================================================

// Wildcard 전체 시장 충격 키
const Wildcard = "*"

// Scenario 시장 이벤트 시나리오
// Shocks: 티커별 가격 충격률 (예: 0.15 = +15%), "*"는 전체 시장
type Scenario struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Shocks      map[string]float64 `json:"shocks"`
}

// builtin 내장 시나리오
var builtin = []Scenario{
	{
		Name:        "AI_BUBBLE",
		Description: "AI-driven melt-up, broad market +15%",
		Shocks:      map[string]float64{Wildcard: 0.15},
	},
	{
		Name:        "CRASH",
		Description: "Broad market crash -15%",
		Shocks:      map[string]float64{Wildcard: -0.15},
	},
	{
		Name:        "RECOVERY",
		Description: "Gradual recovery, broad market +5%",
		Shocks:      map[string]float64{Wildcard: 0.05},
	},
}

// All 내장 시나리오 목록 (이름 오름차순)
func All() []Scenario {
	out := make([]Scenario, len(builtin))
	copy(out, builtin)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Find 이름으로 시나리오 조회
func Find(name string) (Scenario, error) {
	for _, s := range builtin {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
}

// shockFor 티커에 적용할 충격률 (티커 전용 > 와일드카드 > 0)
func (s Scenario) shockFor(ticker string) float64 {
	if shock, ok := s.Shocks[ticker]; ok {
		return shock
	}
	if shock, ok := s.Shocks[Wildcard]; ok {
		return shock
	}
	return 0
}

// Apply 가격 시계열에 충격 적용한 사본 반환 (원본 불변)
func (s Scenario) Apply(series *marketdata.PriceSeries) *marketdata.PriceSeries {
	shock := s.shockFor(series.Ticker)
	factor := 1 + shock

	shocked := &marketdata.PriceSeries{
		Ticker: series.Ticker,
		Bars:   make([]marketdata.Bar, len(series.Bars)),
	}
	for i, bar := range series.Bars {
		bar.Close *= factor
		shocked.Bars[i] = bar
	}
	return shocked
}

// Impact 포트폴리오 가치 변동률: Σ w_i × shock_i
// ⭐ 티커 순서대로 순회 (map 순회 순서 의존 금지)
func (s Scenario) Impact(pf *portfolio.Portfolio) float64 {
	var impact float64
	for i, ticker := range pf.Tickers {
		impact += pf.Weights[i] * s.shockFor(ticker)
	}
	return impact
}

// Result 시나리오별 포트폴리오 영향
type Result struct {
	Scenario Scenario `json:"scenario"`
	Impact   float64  `json:"impact"`
}

// RunAll 모든 내장 시나리오를 포트폴리오에 적용 (이름 오름차순)
func RunAll(pf *portfolio.Portfolio) []Result {
	scenarios := All()
	results := make([]Result, len(scenarios))
	for i, s := range scenarios {
		results[i] = Result{Scenario: s, Impact: s.Impact(pf)}
	}
	return results
}
