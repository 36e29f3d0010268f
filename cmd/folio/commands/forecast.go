package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/forecast"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "다음 거래일 종가 예측",
	Long: `이동 윈도우 선형회귀로 다음 거래일 종가를 예측합니다.

학습은 과거 구간 80%, 검증은 나머지 20%로 수행하며
MAE/RMSE/방향 적중률을 함께 출력합니다.

Example:
  go run ./cmd/folio forecast --ticker SPY
  go run ./cmd/folio forecast --ticker QQQ --window 60`,
	RunE: runForecast,
}

var (
	forecastTicker string
	forecastWindow int
)

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVar(&forecastTicker, "ticker", "", "ticker to forecast (required)")
	forecastCmd.Flags().IntVar(&forecastWindow, "window", forecast.DefaultWindow, "lookback window in trading days")
	forecastCmd.MarkFlagRequired("ticker")
}

func runForecast(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.orchestrator.Forecast(ctx, forecastTicker, forecastWindow)
	if err != nil {
		return fmt.Errorf("forecast %s: %w", forecastTicker, err)
	}

	change := (result.NextClose/result.LastClose - 1) * 100

	fmt.Println("=== Price Forecast ===")
	fmt.Printf("Ticker:          %s\n", result.Ticker)
	fmt.Printf("Last Close:      %.2f\n", result.LastClose)
	fmt.Printf("Predicted Close: %.2f (%+.2f%%)\n", result.NextClose, change)
	fmt.Println("\n--- Validation (last 20% of history) ---")
	fmt.Printf("Samples:  %d\n", result.Accuracy.SampleCount)
	fmt.Printf("MAE:      %.4f\n", result.Accuracy.MAE)
	fmt.Printf("RMSE:     %.4f\n", result.Accuracy.RMSE)
	fmt.Printf("Bias:     %+.4f\n", result.Accuracy.MeanError)
	fmt.Printf("Hit Rate: %.1f%%\n", result.Accuracy.HitRate*100)
	return nil
}
