package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wonny/folio/internal/analytics"
)

// =============================================================================
// Tabular Export - 자산당 한 행
// =============================================================================

// Row 자산별 요약 행
type Row struct {
	Ticker               string  `json:"ticker"`
	Weight               float64 `json:"weight"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	ReturnContribution   float64 `json:"return_contribution"`
	RiskContribution     float64 `json:"risk_contribution"`
}

// Rows 분석 결과를 자산당 한 행의 표 구조로 변환 (Tickers 순서 유지)
func Rows(r *analytics.AnalysisReport) []Row {
	rows := make([]Row, len(r.Tickers))
	for i, ticker := range r.Tickers {
		rows[i] = Row{
			Ticker:               ticker,
			Weight:               r.Weights[i],
			AnnualizedReturn:     r.Components.IndividualReturns[i],
			AnnualizedVolatility: r.Components.IndividualVols[i],
			ReturnContribution:   r.Components.WeightContribution[i],
			RiskContribution:     r.Components.RiskContribution[i],
		}
	}
	return rows
}

var csvHeader = []string{
	"Ticker", "Weight", "Annualized Return", "Annualized Volatility",
	"Return Contribution", "Risk Contribution",
}

// WriteCSV 행 목록을 CSV로 출력 (센티널 값은 N/A)
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Ticker,
			number(row.Weight),
			number(row.AnnualizedReturn),
			number(row.AnnualizedVolatility),
			number(row.ReturnContribution),
			number(row.RiskContribution),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Ticker, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func number(v float64) string {
	if analytics.IsUndefined(v) {
		return notAvailable
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
