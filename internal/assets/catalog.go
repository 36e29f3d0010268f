package assets

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Asset Catalog - 티커 메타데이터 조회
// =============================================================================

// Info 자산 메타데이터
type Info struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Category string `yaml:"category" json:"category"`
}

// Catalog ticker → 메타데이터 조회 테이블
// 기본 내장 카탈로그에 YAML 파일로 항목 추가/덮어쓰기 가능
type Catalog struct {
	entries map[string]Info
}

// builtin 기본 카탈로그 (미국 상장 ETF/주식 일부)
var builtin = map[string]Info{
	// Stocks & Equity ETFs
	"SPY":  {Name: "SPDR S&P 500 ETF", Type: "US Large Cap Stocks", Category: "Equity"},
	"QQQ":  {Name: "Invesco QQQ Trust", Type: "US Growth Stocks", Category: "Equity"},
	"VTI":  {Name: "Vanguard Total Stock Market", Type: "US Total Market Stocks", Category: "Equity"},
	"VXUS": {Name: "Vanguard Total International Stock", Type: "International Stocks", Category: "Equity"},
	"IWN":  {Name: "iShares Russell 2000 Value ETF", Type: "US Small Cap Value Stocks", Category: "Equity"},

	// Bonds & Fixed Income
	"TLT": {Name: "iShares 20+ Year Treasury Bond", Type: "Long-term Treasury Bonds", Category: "Fixed Income"},
	"AGG": {Name: "iShares Core U.S. Aggregate Bond", Type: "Total Bond Market", Category: "Fixed Income"},
	"BND": {Name: "Vanguard Total Bond Market", Type: "Total Bond Market", Category: "Fixed Income"},
	"IEF": {Name: "iShares 7-10 Year Treasury Bond", Type: "Intermediate Treasury Bonds", Category: "Fixed Income"},
	"SHY": {Name: "iShares 1-3 Year Treasury Bond", Type: "Short-term Treasury Bonds", Category: "Fixed Income"},
	"LQD": {Name: "iShares iBoxx $ Investment Grade Corporate Bond", Type: "Corporate Bonds", Category: "Fixed Income"},

	// Commodities
	"GLD": {Name: "SPDR Gold Shares", Type: "Gold", Category: "Commodity"},
	"SLV": {Name: "iShares Silver Trust", Type: "Silver", Category: "Commodity"},
	"DBC": {Name: "Invesco DB Commodity Index Tracking", Type: "Broad Commodities", Category: "Commodity"},
	"USO": {Name: "United States Oil Fund", Type: "Oil", Category: "Commodity"},

	// Real Estate
	"VNQ": {Name: "Vanguard Real Estate ETF", Type: "Real Estate", Category: "Real Estate"},
	"IYR": {Name: "iShares U.S. Real Estate ETF", Type: "Real Estate", Category: "Real Estate"},

	// Individual Stocks
	"AAPL":  {Name: "Apple Inc.", Type: "Technology", Category: "Equity"},
	"MSFT":  {Name: "Microsoft Corporation", Type: "Technology", Category: "Equity"},
	"GOOGL": {Name: "Alphabet Inc.", Type: "Technology", Category: "Equity"},
	"AMZN":  {Name: "Amazon.com Inc.", Type: "Consumer Discretionary", Category: "Equity"},
	"TSLA":  {Name: "Tesla Inc.", Type: "Automotive", Category: "Equity"},
	"JPM":   {Name: "JPMorgan Chase & Co.", Type: "Financial Services", Category: "Equity"},
	"JNJ":   {Name: "Johnson & Johnson", Type: "Healthcare", Category: "Equity"},
	"XOM":   {Name: "Exxon Mobil Corporation", Type: "Energy", Category: "Equity"},
	"META":  {Name: "Meta Platforms Inc.", Type: "Technology", Category: "Equity"},
	"NVDA":  {Name: "NVIDIA Corporation", Type: "Technology", Category: "Equity"},
}

// NewCatalog returns the builtin catalog
func NewCatalog() *Catalog {
	entries := make(map[string]Info, len(builtin))
	for ticker, info := range builtin {
		entries[ticker] = info
	}
	return &Catalog{entries: entries}
}

// catalogFile YAML 오버라이드 파일 구조
type catalogFile struct {
	Assets map[string]Info `yaml:"assets"`
}

// LoadOverrides merges entries from a YAML file into the catalog
// 오타/미사용 필드 즉시 실패 (KnownFields)
func (c *Catalog) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("decode catalog file: %w", err)
	}

	for ticker, info := range file.Assets {
		if info.Name == "" {
			return fmt.Errorf("catalog entry %s: name is required", ticker)
		}
		if info.Category == "" {
			return fmt.Errorf("catalog entry %s: category is required", ticker)
		}
		c.entries[ticker] = info
	}

	return nil
}

// Lookup returns metadata for a ticker
// 미등록 티커는 Unknown으로 처리 (조회 실패는 에러가 아님)
func (c *Catalog) Lookup(ticker string) Info {
	if info, ok := c.entries[ticker]; ok {
		return info
	}
	return Info{Name: ticker, Type: "Unknown", Category: "Unknown"}
}

// Tickers returns all registered tickers
func (c *Catalog) Tickers() []string {
	tickers := make([]string, 0, len(c.entries))
	for ticker := range c.entries {
		tickers = append(tickers, ticker)
	}
	return tickers
}

// AllocationByCategory groups weights by asset category
// 포트폴리오 배분 리포트용 (카테고리 → 비중 합)
func (c *Catalog) AllocationByCategory(tickers []string, weights []float64) (map[string]float64, error) {
	if len(tickers) != len(weights) {
		return nil, fmt.Errorf("tickers/weights length mismatch: %d != %d", len(tickers), len(weights))
	}

	allocation := make(map[string]float64)
	for i, ticker := range tickers {
		category := c.Lookup(ticker).Category
		allocation[category] += weights[i]
	}
	return allocation, nil
}
