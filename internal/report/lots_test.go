package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
)

func TestWriteLotsCSV(t *testing.T) {
	l := ledger.New(nil)
	l.Acquire("MSFT", day(2023, 2, 1), dec(200), dec(3))
	l.Acquire("AAPL", day(2023, 1, 1), dec(100), dec(10))
	require.NoError(t, l.Dispose("AAPL", day(2023, 8, 1), dec(120), dec(4)))

	var buf bytes.Buffer
	require.NoError(t, WriteLotsCSV(&buf, l))

	want := "Instrument,Purchase Date,Purchase Price,Quantity,Sell Date,Sell Price\n" +
		"AAPL,2023-01-01,100,4,2023-08-01,120\n" +
		"AAPL,2023-01-01,100,6,,\n" +
		"MSFT,2023-02-01,200,3,,\n"
	require.Equal(t, want, buf.String())
}
