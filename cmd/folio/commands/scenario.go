package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// scenarioCmd represents the scenario command
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "시장 이벤트 시나리오 적용",
	Long: `내장 시장 시나리오(AI_BUBBLE/CRASH/RECOVERY)를 포트폴리오에 적용합니다.

Example:
  go run ./cmd/folio scenario --tickers SPY,TLT --weights 0.6,0.4`,
	RunE: runScenario,
}

var (
	scenarioTickers  string
	scenarioWeights  string
	scenarioStrategy string
)

func init() {
	rootCmd.AddCommand(scenarioCmd)

	scenarioCmd.Flags().StringVar(&scenarioTickers, "tickers", "", "comma-separated tickers")
	scenarioCmd.Flags().StringVar(&scenarioWeights, "weights", "", "comma-separated weights")
	scenarioCmd.Flags().StringVar(&scenarioStrategy, "strategy", "", "built-in strategy template name")
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	pf, err := resolvePortfolio(scenarioStrategy, scenarioTickers, scenarioWeights)
	if err != nil {
		return err
	}

	fmt.Println("=== Market Scenario Impact ===")
	for _, result := range s.orchestrator.Scenarios(pf) {
		fmt.Printf("%-12s %+7.2f%%  (%s)\n",
			result.Scenario.Name, result.Impact*100, result.Scenario.Description)
	}
	return nil
}
