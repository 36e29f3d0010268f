package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wonny/folio/pkg/logger"
)

// DirLoader loads price series from a local CSV directory (오프라인/테스트용)
// 파일 형식: <TICKER>.csv, 헤더 Date,Open,High,Low,Close,Volume
type DirLoader struct {
	dir    string
	logger *logger.Logger
}

// NewDirLoader creates a loader rooted at dir
func NewDirLoader(dir string, log *logger.Logger) *DirLoader {
	return &DirLoader{dir: dir, logger: log}
}

// Load reads one ticker's CSV file
func (l *DirLoader) Load(ticker string) (*PriceSeries, error) {
	path := filepath.Join(l.dir, ticker+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	series := &PriceSeries{Ticker: ticker}

	// 첫 행은 헤더
	for i, rec := range records[1:] {
		if len(rec) < 6 {
			return nil, fmt.Errorf("%s row %d: expected 6 columns, got %d", path, i+2, len(rec))
		}

		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse date: %w", path, i+2, err)
		}

		values := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d col %d: %w", path, i+2, j, err)
			}
			values[j-1] = v
		}

		series.Bars = append(series.Bars, Bar{
			Date:   date,
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series for %s: %w", ticker, err)
	}

	l.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(series.Bars),
	}).Info("Loaded price series from CSV")

	return series, nil
}

// LoadAll reads CSV files for multiple tickers
func (l *DirLoader) LoadAll(tickers []string) (map[string]*PriceSeries, error) {
	data := make(map[string]*PriceSeries, len(tickers))

	for _, ticker := range tickers {
		series, err := l.Load(ticker)
		if err != nil {
			return nil, err
		}
		data[ticker] = series
	}

	return data, nil
}

// Get Cache와 동일한 공급자 계약 (로컬 파일이라 ctx 미사용)
func (l *DirLoader) Get(ctx context.Context, ticker string) (*PriceSeries, error) {
	return l.Load(ticker)
}

// GetAll Cache와 동일한 공급자 계약
func (l *DirLoader) GetAll(ctx context.Context, tickers []string) (map[string]*PriceSeries, error) {
	return l.LoadAll(tickers)
}
