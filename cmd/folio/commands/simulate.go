package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/charts"
	"github.com/wonny/folio/internal/montecarlo"
	"github.com/wonny/folio/internal/report"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo 시뮬레이션 실행",
	Long: `상관 GBM 모델로 포트폴리오 가치를 전방 시뮬레이션합니다.

이 명령어는:
- 로그수익률 평균(드리프트 상한 적용)과 공분산 추정
- 콜레스키 분해로 상관 구조 유지한 경로 생성
- 말단 분포에서 VaR/CVaR/손실확률 추출

Example:
  go run ./cmd/folio simulate --tickers SPY,TLT --weights 0.6,0.4 --seed 42
  go run ./cmd/folio simulate --strategy "Permanent Portfolio" --horizon 504`,
	RunE: runSimulate,
}

var (
	simulateTickers  string
	simulateWeights  string
	simulateStrategy string
	simulateHorizon  int
	simulateCount    int
	simulateSeed     int64
	simulateCharts   bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simulateTickers, "tickers", "", "comma-separated tickers")
	simulateCmd.Flags().StringVar(&simulateWeights, "weights", "", "comma-separated weights")
	simulateCmd.Flags().StringVar(&simulateStrategy, "strategy", "", "built-in strategy template name")
	simulateCmd.Flags().IntVar(&simulateHorizon, "horizon", 0, "horizon in trading days (default: 1 year)")
	simulateCmd.Flags().IntVar(&simulateCount, "simulations", 0, "number of simulated paths")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "random seed (0 = non-reproducible)")
	simulateCmd.Flags().BoolVar(&simulateCharts, "charts", false, "render fan/spaghetti/histogram chart PNGs")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	pf, err := resolvePortfolio(simulateStrategy, simulateTickers, simulateWeights)
	if err != nil {
		return err
	}

	simConfig := montecarlo.Config{
		Horizon:        s.config.Simulation.HorizonYears * 252,
		NumSimulations: s.config.Simulation.NumSimulations,
		Seed:           simulateSeed,
	}
	if simulateHorizon > 0 {
		simConfig.Horizon = simulateHorizon
	}
	if simulateCount > 0 {
		simConfig.NumSimulations = simulateCount
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.orchestrator.Simulate(ctx, pf, simConfig)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	fmt.Println(report.RenderSimulation(result))

	if simulateCharts {
		renders := []struct {
			name   string
			render func() ([]byte, error)
		}{
			{"fan.png", func() ([]byte, error) { return charts.FanChart(result) }},
			{"spaghetti.png", func() ([]byte, error) { return charts.SpaghettiChart(result) }},
			{"histogram.png", func() ([]byte, error) { return charts.TerminalHistogram(result.TerminalReturns) }},
		}
		for _, r := range renders {
			img, err := r.render()
			if err != nil {
				return fmt.Errorf("render %s: %w", r.name, err)
			}
			path, err := charts.Save(s.config.Charts.OutputDir, r.name, img)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Chart saved to %s\n", path)
		}
	}

	return nil
}
