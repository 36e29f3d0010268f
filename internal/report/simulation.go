package report

import (
	"fmt"
	"strings"

	"github.com/wonny/folio/internal/montecarlo"
)

// RenderSimulation Monte Carlo 결과 요약 텍스트
// ⭐ VaR/CVaR는 손실 기준 (양수 = 손실) — 과거 데이터 VaR와 부호 규약이 다름
func RenderSimulation(r *montecarlo.Result) string {
	var b strings.Builder

	line := strings.Repeat("=", 60)
	b.WriteString(line + "\n")
	b.WriteString("MONTE CARLO SIMULATION SUMMARY\n")
	b.WriteString(line + "\n")

	fmt.Fprintf(&b, "Assets: %s\n", strings.Join(r.Tickers, ", "))
	fmt.Fprintf(&b, "Horizon: %d trading days | Simulations: %d | Seed: %d\n",
		r.Config.Horizon, r.Config.NumSimulations, r.Config.Seed)

	risk := r.Risk
	b.WriteString("\n--- TERMINAL DISTRIBUTION ---\n")
	fmt.Fprintf(&b, "Median Return: %s\n", percent(risk.Median))
	fmt.Fprintf(&b, "Best Case: %s\n", percent(risk.Best))
	fmt.Fprintf(&b, "Worst Case: %s\n", percent(risk.Worst))
	fmt.Fprintf(&b, "Probability of Loss: %s\n", percent(risk.ProbLoss))

	b.WriteString("\n--- TAIL RISK (loss convention, positive = loss) ---\n")
	fmt.Fprintf(&b, "VaR (95%%): %s\n", percent(risk.VaR95))
	fmt.Fprintf(&b, "CVaR (95%%): %s\n", percent(risk.CVaR95))

	return b.String()
}
