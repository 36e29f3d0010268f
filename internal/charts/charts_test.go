package charts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wonny/folio/internal/analytics"
	"github.com/wonny/folio/internal/assets"
	"github.com/wonny/folio/internal/montecarlo"
)

func simulationFixture(t *testing.T) *montecarlo.Result {
	t.Helper()

	input := montecarlo.Input{
		Tickers:     []string{"SPY", "TLT"},
		StartPrices: []float64{100, 50},
		Mean:        []float64{0.0003, 0.0001},
		Cov: mat.NewSymDense(2, []float64{
			0.0001, 0.00002,
			0.00002, 0.00009,
		}),
		Weights:   []float64{0.6, 0.4},
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	result, err := montecarlo.NewSimulator(montecarlo.Config{
		Horizon:        20,
		NumSimulations: 100,
		Seed:           5,
	}).Simulate(input)
	require.NoError(t, err)
	return result
}

func TestFanChart(t *testing.T) {
	img, err := FanChart(simulationFixture(t))
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestSpaghettiChart(t *testing.T) {
	img, err := SpaghettiChart(simulationFixture(t))
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestTerminalHistogram(t *testing.T) {
	result := simulationFixture(t)

	img, err := TerminalHistogram(result.TerminalReturns)
	require.NoError(t, err)
	assert.NotEmpty(t, img)

	_, err = TerminalHistogram(nil)
	assert.Error(t, err)
}

func TestAllocationPie(t *testing.T) {
	report := &analytics.AnalysisReport{
		Tickers: []string{"SPY", "TLT"},
		Weights: []float64{0.6, 0.4},
		Allocation: analytics.Allocation{
			ByCategory: map[string]float64{"Equity": 0.6, "Fixed Income": 0.4},
			Details:    map[string]assets.Info{},
		},
	}

	img, err := AllocationPie(report)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(filepath.Join(dir, "charts"), "test.png", []byte{0x89, 0x50})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}
