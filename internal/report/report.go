package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/folio/internal/analytics"
)

// =============================================================================
// Analysis Report Formatter - 표현 전용, 계산 없음
// =============================================================================

// Render 분석 결과를 사람이 읽는 텍스트 리포트로 변환
// ⭐ 순수 함수: 입력이 같으면 출력도 같음 (섹션/정렬 순서 고정)
func Render(r *analytics.AnalysisReport) string {
	var b strings.Builder

	line := strings.Repeat("=", 60)
	b.WriteString(line + "\n")
	b.WriteString("PORTFOLIO ANALYSIS REPORT\n")
	b.WriteString(line + "\n")

	basic := r.BasicStats
	fmt.Fprintf(&b, "Period: %s ~ %s (%d observations)\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), r.NumObservations)
	fmt.Fprintf(&b, "Total Return: %s\n", percent(basic.TotalReturn))
	fmt.Fprintf(&b, "Annualized Return: %s\n", percent(basic.AnnualizedReturn))
	fmt.Fprintf(&b, "Annualized Volatility: %s\n", percent(basic.AnnualizedVolatility))

	b.WriteString("\n--- ASSET ALLOCATION ---\n")
	for _, entry := range sortedAllocation(r.Allocation.ByCategory) {
		fmt.Fprintf(&b, "%s: %s\n", entry.category, percent1(entry.weight))
	}

	adj := r.RiskAdjusted
	b.WriteString("\n--- RISK-ADJUSTED RETURNS ---\n")
	fmt.Fprintf(&b, "Sharpe Ratio: %s\n", ratio(adj.Sharpe))
	fmt.Fprintf(&b, "Sortino Ratio: %s\n", ratio(adj.Sortino))
	fmt.Fprintf(&b, "Calmar Ratio: %s\n", ratio(adj.Calmar))

	risk := r.RiskMetrics
	b.WriteString("\n--- RISK METRICS ---\n")
	fmt.Fprintf(&b, "Max Drawdown: %s\n", percent(risk.MaxDrawdown))
	fmt.Fprintf(&b, "Value at Risk (95%%): %s\n", percent(risk.VaR95))
	fmt.Fprintf(&b, "Conditional VaR (95%%): %s\n", percent(risk.CVaR95))
	fmt.Fprintf(&b, "Portfolio Beta: %s\n", ratio(risk.Beta))

	stats := r.Statistical
	b.WriteString("\n--- STATISTICAL ANALYSIS ---\n")
	fmt.Fprintf(&b, "Skewness: %s\n", ratio(stats.Skewness))
	fmt.Fprintf(&b, "Kurtosis: %s\n", ratio(stats.Kurtosis))
	fmt.Fprintf(&b, "Normality (Jarque-Bera p-value): %s\n", pvalue(stats.JarqueBeraPValue))

	div := r.Diversification
	b.WriteString("\n--- DIVERSIFICATION ---\n")
	fmt.Fprintf(&b, "Portfolio Variance: %s\n", variance(div.PortfolioVariance))
	fmt.Fprintf(&b, "Diversification Ratio: %s\n", ratio(div.DiversificationRatio))

	b.WriteString("\n--- COMPONENT ANALYSIS ---\n")
	for i, ticker := range r.Tickers {
		info := r.Allocation.Details[ticker]
		fmt.Fprintf(&b, "%s (%s): %s weight | Return: %s | Vol: %s\n",
			ticker, info.Type,
			percent1(r.Weights[i]),
			percent(r.Components.IndividualReturns[i]),
			percent(r.Components.IndividualVols[i]))
	}

	return b.String()
}

type allocationEntry struct {
	category string
	weight   float64
}

// sortedAllocation 비중 내림차순, 동률이면 이름 오름차순 (결정적 순서)
func sortedAllocation(byCategory map[string]float64) []allocationEntry {
	entries := make([]allocationEntry, 0, len(byCategory))
	for category, weight := range byCategory {
		entries = append(entries, allocationEntry{category, weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].category < entries[j].category
	})
	return entries
}

// 정의 불가 지표는 "N/A"로 표기
const notAvailable = "N/A"

func percent(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func percent1(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func ratio(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", v)
}

func pvalue(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.3f", v)
}

func variance(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.6f", v)
}
