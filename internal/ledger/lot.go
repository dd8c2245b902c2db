package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot is a quantity of an instrument acquired at a single purchase event.
// Lots for one instrument form a doubly-linked chain in acquisition order:
// Prev points toward older lots, Next toward newer ones. Quantity is always
// the remaining unsold quantity. SellDate and SellPrice are set together
// when the lot is closed; a closed lot is never touched again.
type Lot struct {
	LotID         uuid.UUID
	Instrument    string
	PurchaseDate  time.Time
	PurchasePrice decimal.Decimal
	Quantity      decimal.Decimal
	SellDate      *time.Time
	SellPrice     *decimal.Decimal

	Prev *Lot
	Next *Lot
}

// Sold reports whether the lot has been closed by a disposal.
func (l *Lot) Sold() bool {
	return l.SellDate != nil
}

// CostBasis is the total remaining basis held in the lot.
func (l *Lot) CostBasis() decimal.Decimal {
	return l.PurchasePrice.Mul(l.Quantity)
}

// RealizedGain is (sell − purchase) × quantity for a closed lot, zero for
// an open one.
func (l *Lot) RealizedGain() decimal.Decimal {
	if !l.Sold() {
		return decimal.Zero
	}
	return l.SellPrice.Sub(l.PurchasePrice).Mul(l.Quantity)
}

// LongTerm reports whether a closed lot was held longer than 365 days.
func (l *Lot) LongTerm() bool {
	if !l.Sold() {
		return false
	}
	return l.SellDate.Sub(l.PurchaseDate) > 365*24*time.Hour
}

func (l *Lot) close(date time.Time, price decimal.Decimal) {
	d := date
	p := price
	l.SellDate = &d
	l.SellPrice = &p
}

// splitFront carves the oldest qty shares off the lot into a new lot that
// takes the original's place in the chain. The new lot keeps the purchase
// date and price; the original keeps the remainder. Caller fixes up the
// neighbor's Next pointer (or the chain root) since the lot cannot see
// whether it was the root.
func (l *Lot) splitFront(qty decimal.Decimal) *Lot {
	front := &Lot{
		LotID:         uuid.New(),
		Instrument:    l.Instrument,
		PurchaseDate:  l.PurchaseDate,
		PurchasePrice: l.PurchasePrice,
		Quantity:      qty,
		Prev:          l.Prev,
		Next:          l,
	}
	l.Prev = front
	l.Quantity = l.Quantity.Sub(qty)
	return front
}
