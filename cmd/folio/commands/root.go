package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir    string
	assetsFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - 포트폴리오 분석/시뮬레이션 도구",
	Long: `folio Unified CLI

과거 가격 데이터 기반 포트폴리오 분석과
상관 GBM Monte Carlo 시뮬레이션 도구.

Usage:
  go run ./cmd/folio [command]

Examples:
  go run ./cmd/folio analyze --tickers SPY,TLT,GLD --weights 0.5,0.3,0.2
  go run ./cmd/folio simulate --strategy "All Weather (Ray Dalio)" --seed 42
  go run ./cmd/folio forecast --ticker SPY
  go run ./cmd/folio serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "load prices from a local CSV directory instead of Yahoo Finance")
	rootCmd.PersistentFlags().StringVar(&assetsFile, "assets-file", "", "YAML file with asset catalog overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
