package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/vicanso/go-charts/v2"

	"github.com/wonny/folio/internal/analytics"
	"github.com/wonny/folio/internal/montecarlo"
)

// =============================================================================
// Chart Rendering - 출력 전용, 계산 없음
// =============================================================================

// FanPercentiles 팬 차트 백분위수 밴드 (아래부터 위로)
var FanPercentiles = []float64{5, 25, 50, 75, 95}

// HistogramBins 말단 수익률 히스토그램 구간 수
const HistogramBins = 30

// maxSpaghettiPaths 스파게티 차트에 그릴 최대 경로 수 (과밀 방지)
const maxSpaghettiPaths = 50

// FanChart 시뮬레이션 백분위수 밴드 라인 차트 (PNG)
func FanChart(result *montecarlo.Result) ([]byte, error) {
	bands := montecarlo.PathPercentiles(result.PortfolioPaths, FanPercentiles)

	labels := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		labels[i] = d.Format("2006-01-02")
	}

	legends := make([]string, len(FanPercentiles))
	for i, p := range FanPercentiles {
		legends[i] = fmt.Sprintf("p%.0f", p)
	}

	painter, err := charts.LineRender(bands,
		charts.TitleTextOptionFunc(fmt.Sprintf("Portfolio Simulation Fan (%d paths)", result.Config.NumSimulations)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: legends,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("render fan chart: %w", err)
	}
	return painter.Bytes()
}

// SpaghettiChart 개별 시뮬레이션 경로 라인 차트 (최대 50개)
func SpaghettiChart(result *montecarlo.Result) ([]byte, error) {
	if len(result.PortfolioPaths) == 0 {
		return nil, fmt.Errorf("no portfolio paths to render")
	}

	numPaths := len(result.PortfolioPaths[0])
	if numPaths > maxSpaghettiPaths {
		numPaths = maxSpaghettiPaths
	}

	// [시점][시뮬레이션] → 경로별 시리즈로 전치
	series := make([][]float64, numPaths)
	for n := 0; n < numPaths; n++ {
		path := make([]float64, len(result.PortfolioPaths))
		for t := range result.PortfolioPaths {
			path[t] = result.PortfolioPaths[t][n]
		}
		series[n] = path
	}

	labels := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		labels[i] = d.Format("2006-01-02")
	}

	painter, err := charts.LineRender(series,
		charts.TitleTextOptionFunc(fmt.Sprintf("Simulated Portfolio Paths (%d of %d)", numPaths, result.Config.NumSimulations)),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("render spaghetti chart: %w", err)
	}
	return painter.Bytes()
}

// TerminalHistogram 말단 수익률 분포 히스토그램 (바 차트)
func TerminalHistogram(terminalReturns []float64) ([]byte, error) {
	if len(terminalReturns) == 0 {
		return nil, fmt.Errorf("no terminal returns to render")
	}

	low, high := terminalReturns[0], terminalReturns[0]
	for _, r := range terminalReturns {
		if r < low {
			low = r
		}
		if r > high {
			high = r
		}
	}
	if low == high {
		high = low + 1e-9
	}

	width := (high - low) / HistogramBins
	counts := make([]float64, HistogramBins)
	labels := make([]string, HistogramBins)
	for _, r := range terminalReturns {
		bin := int((r - low) / width)
		if bin >= HistogramBins {
			bin = HistogramBins - 1
		}
		counts[bin]++
	}
	for i := range labels {
		mid := low + (float64(i)+0.5)*width
		labels[i] = fmt.Sprintf("%.1f%%", mid*100)
	}

	painter, err := charts.BarRender([][]float64{counts},
		charts.TitleTextOptionFunc("Terminal Return Distribution"),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return painter.Bytes()
}

// AllocationPie 카테고리별 자산 배분 파이 차트
func AllocationPie(report *analytics.AnalysisReport) ([]byte, error) {
	byCategory := report.Allocation.ByCategory
	if len(byCategory) == 0 {
		return nil, fmt.Errorf("no allocation data to render")
	}

	// 비중 내림차순, 동률이면 이름 오름차순
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		wi, wj := byCategory[categories[i]], byCategory[categories[j]]
		if wi != wj {
			return wi > wj
		}
		return categories[i] < categories[j]
	})

	values := make([]float64, len(categories))
	pieLabels := make([]string, len(categories))
	for i, category := range categories {
		values[i] = math.Round(byCategory[category] * 1000)
		pieLabels[i] = fmt.Sprintf("%s (%.1f%%)", category, byCategory[category]*100)
	}

	painter, err := charts.PieRender(values,
		charts.TitleTextOptionFunc("Asset Allocation by Category"),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: pieLabels,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("render allocation pie: %w", err)
	}
	return painter.Bytes()
}

// Save 차트 PNG를 출력 디렉터리에 저장, 경로 반환
func Save(dir, name string, img []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write chart %s: %w", path, err)
	}
	return path, nil
}
