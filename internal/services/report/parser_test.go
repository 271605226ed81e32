package report

import (
	"errors"
	"testing"

	"PumpStat/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReport = `📊 Pump Volume Report (last 24h)
Total Trades: 34,450 (+5.89%)
New Coins: 1,257 (-7.51%)
Total Volume: 14,629.24 SOL (+13.00%)
Buy Volume: 8,081.80 SOL (+12.86%)
Sell Volume: 6,547.44 SOL (+13.17%)
Total Buys: 17,536 (+4.73%)
Total Sells: 16,914 (+7.13%)
Reached KOTH: 44 (+62.96%)
Fully Bonded: 19 (+137.50%)`

func TestParse_FullReport(t *testing.T) {
	p := New()
	m, err := p.Parse(fullReport, 3)
	require.NoError(t, err)

	assert.Equal(t, 9, m.FieldCount())
	assert.Equal(t, 14629.24, *m.TotalVolume)
	assert.Equal(t, 8081.8, *m.BuyVolume)
	assert.Equal(t, 6547.44, *m.SellVolume)
	assert.Equal(t, int64(34450), *m.TotalTrades)
	assert.Equal(t, int64(1257), *m.NewCoins)
	assert.Equal(t, int64(17536), *m.TotalBuys)
	assert.Equal(t, int64(16914), *m.TotalSells)
	assert.Equal(t, int64(44), *m.ReachedKOTH)
	assert.Equal(t, int64(19), *m.FullyBonded)
}

func TestParse_StripsThousandsSeparators(t *testing.T) {
	m, err := New().Parse("Total Volume: 14,629.24 SOL", 0)
	require.NoError(t, err)
	assert.Equal(t, 14629.24, *m.TotalVolume)
}

func TestParse_Threshold(t *testing.T) {
	p := New()

	tests := []struct {
		name      string
		text      string
		minFields int
		wantErr   bool
	}{
		{"single field below strict threshold", "Total Volume: 100 SOL", 3, true},
		{"single field above loose threshold", "Total Volume: 100 SOL", 0, false},
		{"count equal to threshold", "Total Volume: 1 SOL Total Trades: 2", 2, true},
		{"count above threshold", "Total Volume: 1 SOL Total Trades: 2 New Coins: 3", 2, false},
		{"nothing at all", "gm frens", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.text, tt.minFields)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrParseFailure))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParse_CaseInsensitiveAndEmbedded(t *testing.T) {
	text := "forwarded from channel ... total volume 2,500.5 sol and TOTAL TRADES: 900 — see you tomorrow"
	m, err := New().Parse(text, 1)
	require.NoError(t, err)
	assert.Equal(t, 2500.5, *m.TotalVolume)
	assert.Equal(t, int64(900), *m.TotalTrades)
	assert.Nil(t, m.NewCoins)
}

func TestParse_OrderIndependent(t *testing.T) {
	a := "Total Volume: 500.00 SOL\nTotal Trades: 100\nNew Coins: 7\nFully Bonded: 2"
	b := "Fully Bonded: 2 | New Coins: 7 | Total Trades: 100 | Total Volume: 500.00 SOL"

	p := New()
	ma, err := p.Parse(a, 0)
	require.NoError(t, err)
	mb, err := p.Parse(b, 0)
	require.NoError(t, err)
	assert.Equal(t, ma, mb)
}

func TestParse_MonetaryFieldNeedsUnit(t *testing.T) {
	m, err := New().Parse("Total Volume: 500 Total Trades: 10", 0)
	require.NoError(t, err)
	assert.Nil(t, m.TotalVolume)
	assert.Equal(t, int64(10), *m.TotalTrades)
}

func TestParse_UnconvertibleValueOmitted(t *testing.T) {
	m, err := New().Parse("Total Trades: ,,, New Coins: 99999999999999999999999 Fully Bonded: 3", 0)
	require.NoError(t, err)
	assert.Nil(t, m.TotalTrades)
	assert.Nil(t, m.NewCoins)
	assert.Equal(t, int64(3), *m.FullyBonded)
	assert.Equal(t, 1, m.FieldCount())
}

func TestParseChanges(t *testing.T) {
	p := New()

	c := p.ParseChanges("Total Volume: 100 SOL (+13.00%)")
	require.NotNil(t, c)
	assert.Equal(t, "+13.00%", c.VolumeChange)
	assert.Empty(t, c.TradesChange)

	c = p.ParseChanges(fullReport)
	require.NotNil(t, c)
	assert.Equal(t, "-7.51%", c.CoinsChange)
	assert.Equal(t, "+137.50%", c.BondedChange)
	assert.Equal(t, "+62.96%", c.KOTHChange)

	assert.Nil(t, p.ParseChanges("Total Volume: 100 SOL"))
	// the annotation has to follow the value directly
	assert.Nil(t, p.ParseChanges("Total Volume: 100 SOL was up (+13.00%)"))
}

func TestParseReport(t *testing.T) {
	r, err := New().ParseReport("Total Volume: 100 SOL (+13.00%)", 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *r.Metrics.TotalVolume)
	require.NotNil(t, r.Changes)
	assert.Equal(t, "+13.00%", r.Changes.VolumeChange)

	_, err = New().ParseReport("Total Volume: 100 SOL (+13.00%)", 3)
	assert.ErrorIs(t, err, models.ErrParseFailure)
}

func TestNew_CustomTable(t *testing.T) {
	p := New(DefaultFields[0])
	m, err := p.Parse(fullReport, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, m.FieldCount())
}

func TestParse_CountOverflowLeavesFieldAbsent(t *testing.T) {
	m, err := New().Parse("Total Volume: 500 SOL\nTotal Trades: 99999999999999999999\nNew Coins: 7", 1)
	require.NoError(t, err)

	assert.Nil(t, m.TotalTrades)
	assert.Equal(t, 2, m.FieldCount())
	assert.Equal(t, int64(7), *m.NewCoins)
}
