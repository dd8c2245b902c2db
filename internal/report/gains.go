// Package report walks a finalized ledger and renders the gains and lot
// history outputs.
package report

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
)

// halfCent is the display threshold: anything that would render as $0.00
// prints blank instead.
var halfCent = decimal.New(5, -3)

type GainsRow struct {
	Instrument string
	LongTerm   decimal.Decimal
	ShortTerm  decimal.Decimal
}

type GainsReport struct {
	Rows []GainsRow
	// Totals accumulate the per-instrument values rounded to cents first.
	// Rounding per instrument and summing can differ from summing exact
	// values and rounding once; the former matches what the per-row output
	// shows, so the total row stays consistent with the rows above it.
	TotalLong  decimal.Decimal
	TotalShort decimal.Decimal
}

// Gains aggregates realized gains for the calendar year containing now,
// bucketed by holding period. Per instrument the chain is walked newest to
// oldest; once a closed lot sold before January 1 appears, every older sell
// predates it too (FIFO keeps sell dates non-decreasing along the chain)
// and the walk stops. Open lots never stop the walk.
func Gains(l *ledger.Ledger, now time.Time) GainsReport {
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	report := GainsReport{
		TotalLong:  decimal.Zero,
		TotalShort: decimal.Zero,
	}
	for _, instrument := range l.Instruments() {
		long := decimal.Zero
		short := decimal.Zero
		for lot := l.Head(instrument); lot != nil; lot = lot.Prev {
			if !lot.Sold() {
				continue
			}
			if lot.SellDate.Before(startOfYear) {
				break
			}
			if lot.LongTerm() {
				long = long.Add(lot.RealizedGain())
			} else {
				short = short.Add(lot.RealizedGain())
			}
		}
		if !long.IsZero() || !short.IsZero() {
			report.Rows = append(report.Rows, GainsRow{
				Instrument: instrument,
				LongTerm:   long,
				ShortTerm:  short,
			})
		}
		report.TotalLong = report.TotalLong.Add(long.Round(2))
		report.TotalShort = report.TotalShort.Add(short.Round(2))
	}
	return report
}

// FormatCurrency renders a monetary value to cents, or blank when it would
// round to less than one cent either way.
func FormatCurrency(d decimal.Decimal) string {
	if d.Abs().LessThan(halfCent) {
		return ""
	}
	return d.StringFixed(2)
}

// WriteCSV emits the gains report with one row per instrument that had
// activity and a final Total row.
func (r GainsReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Instrument", "Long-Term Gains", "Short-Term Gains"}); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{row.Instrument, FormatCurrency(row.LongTerm), FormatCurrency(row.ShortTerm)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"Total", FormatCurrency(r.TotalLong), FormatCurrency(r.TotalShort)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
