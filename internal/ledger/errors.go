package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrExhausted reports a disposal that could not be fully matched against
// open lots. It means missing history or out-of-order replay, not a parse
// problem, so it carries enough context to locate the offending trade.
type ErrExhausted struct {
	Instrument string
	Date       time.Time
	Shortfall  decimal.Decimal
}

func (e ErrExhausted) Error() string {
	return fmt.Sprintf("no open %s lots left for disposal on %s; %s shares unmatched",
		e.Instrument, e.Date.Format("2006-01-02"), e.Shortfall.String())
}

// ErrAmbiguousRatio reports a derived split ratio that needs confirmation
// but had no resolver to confirm it. The caller can supply a resolver and
// re-run; the ledger was not mutated.
type ErrAmbiguousRatio struct {
	Instrument string
	Date       time.Time
	Computed   decimal.Decimal
}

func (e ErrAmbiguousRatio) Error() string {
	return fmt.Sprintf("split of %s on %s has suspect computed ratio %s and no override was available",
		e.Instrument, e.Date.Format("2006-01-02"), e.Computed.String())
}

// ErrNoPosition reports a split applied to an instrument with no holdings,
// which would otherwise divide by zero when deriving the ratio.
type ErrNoPosition struct {
	Instrument string
	Date       time.Time
}

func (e ErrNoPosition) Error() string {
	return fmt.Sprintf("split of %s on %s with no current holdings",
		e.Instrument, e.Date.Format("2006-01-02"))
}
