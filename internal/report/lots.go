package report

import (
	"encoding/csv"
	"io"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
)

const dateFormat = "2006-01-02"

// WriteLotsCSV emits the full lot history: every lot ever created, closed
// or open, in chain order oldest to newest, instruments sorted. Open lots
// leave the sell columns blank.
func WriteLotsCSV(w io.Writer, l *ledger.Ledger) error {
	cw := csv.NewWriter(w)
	header := []string{"Instrument", "Purchase Date", "Purchase Price", "Quantity", "Sell Date", "Sell Price"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, instrument := range l.Instruments() {
		for lot := l.Root(instrument); lot != nil; lot = lot.Next {
			record := []string{
				lot.Instrument,
				lot.PurchaseDate.Format(dateFormat),
				lot.PurchasePrice.String(),
				lot.Quantity.String(),
				"",
				"",
			}
			if lot.Sold() {
				record[4] = lot.SellDate.Format(dateFormat)
				record[5] = lot.SellPrice.String()
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
