package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/charts"
	"github.com/wonny/folio/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "포트폴리오 분석 리포트 생성",
	Long: `과거 가격 데이터로 포트폴리오 분석 리포트를 생성합니다.

이 명령어는:
- 일별 수익률 기반 기본/위험조정 통계 계산
- 최대 낙폭, 과거 VaR/CVaR, 베타 계산
- 분산투자/구성요소 분해 계산

Example:
  go run ./cmd/folio analyze --tickers SPY,TLT,GLD --weights 0.5,0.3,0.2
  go run ./cmd/folio analyze --strategy "60/40 Portfolio" --export summary.csv`,
	RunE: runAnalyze,
}

var (
	analyzeTickers  string
	analyzeWeights  string
	analyzeStrategy string
	analyzeExport   string
	analyzeCharts   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTickers, "tickers", "", "comma-separated tickers (e.g. SPY,TLT,GLD)")
	analyzeCmd.Flags().StringVar(&analyzeWeights, "weights", "", "comma-separated weights (normalized to sum 1)")
	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "", "built-in strategy template name")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "write per-asset summary CSV to this path")
	analyzeCmd.Flags().BoolVar(&analyzeCharts, "charts", false, "render allocation chart PNG")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	pf, err := resolvePortfolio(analyzeStrategy, analyzeTickers, analyzeWeights)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.orchestrator.Analyze(ctx, pf)
	if err != nil {
		return fmt.Errorf("analyze portfolio: %w", err)
	}

	fmt.Println(report.Render(result))

	if analyzeExport != "" {
		f, err := os.Create(analyzeExport)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()

		if err := report.WriteCSV(f, report.Rows(result)); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("✅ Summary exported to %s\n", analyzeExport)
	}

	if analyzeCharts {
		img, err := charts.AllocationPie(result)
		if err != nil {
			return fmt.Errorf("render allocation chart: %w", err)
		}
		path, err := charts.Save(s.config.Charts.OutputDir, "allocation.png", img)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Allocation chart saved to %s\n", path)
	}

	return nil
}
