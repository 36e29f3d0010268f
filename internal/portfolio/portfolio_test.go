package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/marketdata"
)

func TestNewNormalizesWeights(t *testing.T) {
	p, err := New([]string{"spy", " tlt "}, []float64{3, 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "TLT"}, p.Tickers)
	assert.InDelta(t, 0.75, p.Weights[0], 1e-12)
	assert.InDelta(t, 0.25, p.Weights[1], 1e-12)

	// 정규화 불변식: 비중 합 = 1.0
	var sum float64
	for _, w := range p.Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyPortfolio)

	_, err = New([]string{"SPY"}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = New([]string{"SPY", "TLT"}, []float64{0.5, -0.1})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = New([]string{"SPY", "TLT"}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestParse(t *testing.T) {
	p, err := Parse("SPY, TLT, GLD", "0.5, 0.3, 0.2")
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "TLT", "GLD"}, p.Tickers)
	assert.InDelta(t, 0.5, p.Weights[0], 1e-12)

	_, err = Parse("SPY,TLT", "0.5,abc")
	assert.Error(t, err)

	_, err = Parse("SPY,TLT", "1.0")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func alignedFixture() *marketdata.AlignedCloses {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 3)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	return &marketdata.AlignedCloses{
		Tickers: []string{"AAA", "BBB"},
		Dates:   dates,
		Prices: [][]float64{
			{100, 50},
			{110, 45},
			{121, 54},
		},
	}
}

func TestValueSeries(t *testing.T) {
	p, err := New([]string{"AAA", "BBB"}, []float64{0.6, 0.4})
	require.NoError(t, err)

	values, err := p.ValueSeries(alignedFixture())
	require.NoError(t, err)

	require.Len(t, values, 3)
	assert.InDelta(t, 0.6*100+0.4*50, values[0], 1e-12)
	assert.InDelta(t, 0.6*121+0.4*54, values[2], 1e-12)
}

func TestReturnSeries(t *testing.T) {
	p, err := New([]string{"AAA", "BBB"}, []float64{0.6, 0.4})
	require.NoError(t, err)

	returns, err := p.ReturnSeries(alignedFixture())
	require.NoError(t, err)

	require.Len(t, returns, 2)
	// r_1 = 0.6*(110/100-1) + 0.4*(45/50-1)
	assert.InDelta(t, 0.6*0.10+0.4*(-0.10), returns[0], 1e-12)
	// r_2 = 0.6*(121/110-1) + 0.4*(54/45-1)
	assert.InDelta(t, 0.6*0.10+0.4*0.20, returns[1], 1e-12)
}

func TestReturnSeriesOrderMismatch(t *testing.T) {
	p, err := New([]string{"BBB", "AAA"}, []float64{0.5, 0.5})
	require.NoError(t, err)

	_, err = p.ReturnSeries(alignedFixture())
	assert.Error(t, err)
}
