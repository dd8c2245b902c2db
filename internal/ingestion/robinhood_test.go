package ingestion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/domain"
)

func TestLoadFile(t *testing.T) {
	p := NewProvider(nil)
	txns, err := p.LoadFile("testdata/transactions.csv")
	require.NoError(t, err)

	// Six rows: dividend, voided row skipped; remaining four reversed
	// into chronological order.
	require.Len(t, txns, 4)

	require.Equal(t, domain.Transaction{
		Date:       time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
		Instrument: "AAPL",
		Kind:       domain.TransactionKind_Acquire,
		Quantity:   decimal.NewFromInt(10),
		Price:      decimal.RequireFromString("150.00"),
	}, txns[0])

	require.Equal(t, domain.TransactionKind_Split, txns[1].Kind)
	require.Equal(t, "AAPL", txns[1].Instrument)
	require.True(t, txns[1].Quantity.Equal(decimal.NewFromInt(10)))

	// SXCH: 'S' suffix stripped from quantity, cost basis forced to 0.
	require.Equal(t, domain.TransactionKind_Acquire, txns[2].Kind)
	require.Equal(t, "XYZ", txns[2].Instrument)
	require.True(t, txns[2].Quantity.Equal(decimal.NewFromInt(10)))
	require.True(t, txns[2].Price.IsZero())

	// Sell: '$' and thousands separator stripped.
	require.Equal(t, domain.TransactionKind_Dispose, txns[3].Kind)
	require.True(t, txns[3].Price.Equal(decimal.RequireFromString("1025.50")))
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("malformed row is fatal", func(t *testing.T) {
		p := NewProvider(nil)
		_, err := p.LoadFile("testdata/bad_row.csv")
		require.Error(t, err)
		require.Contains(t, err.Error(), "bad_row.csv line 2")
	})

	t.Run("unrecognized file is skipped", func(t *testing.T) {
		p := NewProvider(nil)
		txns, err := p.LoadFile("testdata/not_a_report.csv")
		require.NoError(t, err)
		require.Empty(t, txns)
	})

	t.Run("missing reference is a warning", func(t *testing.T) {
		p := NewProvider(nil)
		txns, err := p.Load([]string{"testdata/does_not_exist.csv"})
		require.NoError(t, err)
		require.Empty(t, txns)
	})
}

func TestLoadDirectory(t *testing.T) {
	p := NewProvider(nil)
	txns, err := p.Load([]string{"testdata"})
	require.Error(t, err, "directory load must hit the malformed report")
	require.Nil(t, txns)
}

func TestDetermineColumnOrder(t *testing.T) {
	t.Run("bom and spacing tolerated", func(t *testing.T) {
		ordering, err := determineColumnOrder([]string{
			"\ufeffActivity Date", "Process Date", "Instrument", "Trans Code", "Quantity", "Price",
		})
		require.NoError(t, err)
		require.Equal(t, 0, ordering["activity_date"])
		require.Equal(t, 3, ordering["trans_code"])
	})

	t.Run("missing column reported", func(t *testing.T) {
		_, err := determineColumnOrder([]string{"Activity Date", "Instrument"})
		require.Error(t, err)
	})
}
