package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatioResolver supplies a corrected split ratio when the derived one looks
// wrong. The source data truncates split share counts to four decimal
// places, so ratios needing more than one decimal digit cannot be trusted
// and the caller has to confirm the real one (interactively, or from
// pre-declared overrides). Returning an error leaves the ledger untouched.
type RatioResolver interface {
	ResolveSplitRatio(instrument string, date time.Time, computed decimal.Decimal) (decimal.Decimal, error)
}

// RatioResolverFunc adapts a func to the RatioResolver interface.
type RatioResolverFunc func(instrument string, date time.Time, computed decimal.Decimal) (decimal.Decimal, error)

func (f RatioResolverFunc) ResolveSplitRatio(instrument string, date time.Time, computed decimal.Decimal) (decimal.Decimal, error) {
	return f(instrument, date, computed)
}
