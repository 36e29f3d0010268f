package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/assets"
)

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "내장 배분 템플릿 목록",
	Long: `사전 정의된 포트폴리오 배분 템플릿을 출력합니다.

Example:
  go run ./cmd/folio strategies`,
	RunE: runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) error {
	for _, strategy := range assets.Strategies() {
		fmt.Printf("%s\n  %s\n", strategy.Name, strategy.Description)

		tickers := make([]string, 0, len(strategy.Assets))
		for ticker := range strategy.Assets {
			tickers = append(tickers, ticker)
		}
		sort.Strings(tickers)
		for _, ticker := range tickers {
			fmt.Printf("    %-5s %5.1f%%\n", ticker, strategy.Assets[ticker]*100)
		}
		fmt.Println()
	}
	return nil
}
