package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/config"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

func TestPromptResolver(t *testing.T) {
	t.Run("reads a decimal from the operator", func(t *testing.T) {
		var out bytes.Buffer
		r := &PromptResolver{
			Log: logger.Nop{},
			In:  strings.NewReader("1.5\n"),
			Out: &out,
		}
		ratio, err := r.ResolveSplitRatio("NVDA", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1.2345))
		require.NoError(t, err)
		require.True(t, ratio.Equal(decimal.NewFromFloat(1.5)))
		require.Contains(t, out.String(), "NVDA")
	})

	t.Run("garbage input is an error", func(t *testing.T) {
		r := &PromptResolver{
			Log: logger.Nop{},
			In:  strings.NewReader("one point five\n"),
			Out: &bytes.Buffer{},
		}
		_, err := r.ResolveSplitRatio("NVDA", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1.2345))
		require.Error(t, err)
	})
}

func TestConfigResolver(t *testing.T) {
	cfg := config.Config{
		SplitOverrides: []config.SplitOverride{
			{Instrument: "NVDA", Date: "2024-06-10", Ratio: "10"},
		},
	}

	t.Run("declared override wins without consulting next", func(t *testing.T) {
		r := &ConfigResolver{Cfg: cfg, Next: ledger.RatioResolverFunc(
			func(string, time.Time, decimal.Decimal) (decimal.Decimal, error) {
				t.Fatal("next resolver must not be consulted")
				return decimal.Zero, nil
			})}
		ratio, err := r.ResolveSplitRatio("NVDA", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(9.9999))
		require.NoError(t, err)
		require.True(t, ratio.Equal(decimal.NewFromInt(10)))
	})

	t.Run("undeclared falls through", func(t *testing.T) {
		r := &ConfigResolver{Cfg: cfg, Next: ledger.RatioResolverFunc(
			func(string, time.Time, decimal.Decimal) (decimal.Decimal, error) {
				return decimal.NewFromInt(2), nil
			})}
		ratio, err := r.ResolveSplitRatio("AAPL", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1.2345))
		require.NoError(t, err)
		require.True(t, ratio.Equal(decimal.NewFromInt(2)))
	})

	t.Run("undeclared with no next is ambiguous", func(t *testing.T) {
		r := &ConfigResolver{Cfg: cfg}
		_, err := r.ResolveSplitRatio("AAPL", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1.2345))
		var ambiguous ledger.ErrAmbiguousRatio
		require.ErrorAs(t, err, &ambiguous)
	})
}

func TestBuildLedger(t *testing.T) {
	app := &App{Log: logger.Nop{}, Cfg: config.Default()}
	led, err := app.buildLedger([]string{"testdata/transactions.csv"})
	require.NoError(t, err)

	lots := led.Lots("AAPL")
	require.Len(t, lots, 3)
	require.True(t, lots[0].Sold())
	require.True(t, lots[1].Sold())
	require.False(t, lots[2].Sold())
	require.True(t, led.Quantity("AAPL").Equal(decimal.NewFromInt(5)))
}

func TestBuildLedgerNoArgs(t *testing.T) {
	app := &App{Log: logger.Nop{}, Cfg: config.Default()}
	_, err := app.buildLedger(nil)
	require.Error(t, err)
}
