package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/httputil"
	"github.com/wonny/folio/pkg/logger"
)

// Client fetches daily bars from the Yahoo chart API
// ⭐ SSOT: 외부 시세 조회는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a market data client from config
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Market.RatePerSecond, 1)

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.Market.BaseURL,
		logger:     log,
	}
}

// chartResponse Yahoo v8 chart API 응답 구조
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// FetchDaily fetches daily bars for a ticker over the given period (예: 1y, 2y, 5y, 10y, max)
// 결측 봉(null close)은 제거하고 날짜 오름차순으로 반환
func (c *Client) FetchDaily(ctx context.Context, ticker, period string) (*PriceSeries, error) {
	url := fmt.Sprintf("%s/%s?range=%s&interval=1d", c.baseURL, ticker, period)

	resp, err := c.httpClient.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := &PriceSeries{Ticker: ticker}
	for i, ts := range result.Timestamp {
		// 결측 봉 제거 (거래 정지 등)
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := Bar{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		series.Bars = append(series.Bars, bar)
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series for %s: %w", ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(series.Bars),
		"period": period,
	}).Info("Loaded price series")

	return series, nil
}

// FetchAll fetches daily bars for multiple tickers
// 하나라도 실패하면 에러 (코어는 완전한 데이터를 전제로 함)
func (c *Client) FetchAll(ctx context.Context, tickers []string, period string) (map[string]*PriceSeries, error) {
	data := make(map[string]*PriceSeries, len(tickers))

	for _, ticker := range tickers {
		series, err := c.FetchDaily(ctx, ticker, period)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ticker, err)
		}
		data[ticker] = series
	}

	return data, nil
}
