package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKind_Acquire TransactionKind = "ACQUIRE"
	TransactionKind_Dispose TransactionKind = "DISPOSE"
	TransactionKind_Split   TransactionKind = "SPLIT"
)

// Transaction is one ledger-facing event. The stream provider has already
// collapsed broker transaction codes into the three kinds the ledger
// understands; anything else never reaches the ledger.
type Transaction struct {
	Date       time.Time
	Instrument string
	Kind       TransactionKind
	Quantity   decimal.Decimal
	// Price is the per-share transaction price. Zero for acquisitions with
	// no known cost basis (conversions, exchanges, merger settlements) and
	// unused for splits, where Quantity carries new shares received.
	Price decimal.Decimal
}

func (t Transaction) GetDate() time.Time { return t.Date }

// KindForTransCode maps a Robinhood transaction code onto a ledger kind.
// The second return is false for codes the ledger does not understand
// (dividends, interest, transfers); those rows are skipped upstream.
func KindForTransCode(code string) (TransactionKind, bool) {
	switch code {
	case "Buy", "CONV", "SXCH", "MRGS":
		return TransactionKind_Acquire, true
	case "Sell":
		return TransactionKind_Dispose, true
	case "SPL":
		return TransactionKind_Split, true
	}
	return "", false
}

// ZeroCostBasis reports whether a transaction code acquires shares with no
// usable cost basis. These get a worst-case basis of 0: the source data
// carries no price for conversions, exchanges, or merger settlements.
func ZeroCostBasis(code string) bool {
	switch code {
	case "CONV", "SXCH", "MRGS":
		return true
	}
	return false
}
