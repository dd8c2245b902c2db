package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

// position is one instrument's chain plus its running unsold quantity.
// The running quantity is maintained incrementally rather than recomputed
// from lots, so known rounding noise in the source data does not compound.
type position struct {
	root     *Lot
	head     *Lot
	quantity decimal.Decimal
}

// Ledger tracks tax lots for any number of instruments. Instruments are
// independent; all state hangs off the Ledger value so tests can build as
// many as they want. Not safe for concurrent use, and transactions must be
// applied in chronological order.
type Ledger struct {
	positions map[string]*position
	log       logger.Logger
}

func New(log logger.Logger) *Ledger {
	if log == nil {
		log = logger.Nop{}
	}
	return &Ledger{
		positions: map[string]*position{},
		log:       log,
	}
}

func (l *Ledger) position(instrument string) *position {
	p, ok := l.positions[instrument]
	if !ok {
		p = &position{quantity: decimal.Zero}
		l.positions[instrument] = p
	}
	return p
}

// Acquire appends a new open lot at the head of the instrument's chain and
// bumps the running quantity. Acquisitions are always accepted.
func (l *Ledger) Acquire(instrument string, date time.Time, price, quantity decimal.Decimal) *Lot {
	p := l.position(instrument)
	lot := &Lot{
		LotID:         uuid.New(),
		Instrument:    instrument,
		PurchaseDate:  date,
		PurchasePrice: price,
		Quantity:      quantity,
		Prev:          p.head,
	}
	if p.root == nil {
		p.root = lot
	}
	if p.head != nil {
		p.head.Next = lot
	}
	p.head = lot
	p.quantity = p.quantity.Add(quantity)
	l.log.Debugf("%s: acquired %s @ %s, holding %s", instrument, quantity, price, p.quantity)
	return lot
}

// Dispose matches quantity against open lots oldest-first. Whole lots are
// closed with the disposal's date and price; a lot that is only partially
// consumed is split so the sold front keeps the original purchase date and
// price while the remainder stays open. Returns ErrExhausted when the chain
// runs out before the quantity is fully matched; the lots closed up to that
// point keep their sell marks, matching the invalid-input abort policy.
func (l *Ledger) Dispose(instrument string, date time.Time, price, quantity decimal.Decimal) error {
	p, ok := l.positions[instrument]
	if !ok {
		return ErrExhausted{Instrument: instrument, Date: date, Shortfall: quantity}
	}
	remaining := quantity
	cur := p.root
	for remaining.IsPositive() {
		if cur == nil {
			return ErrExhausted{Instrument: instrument, Date: date, Shortfall: remaining}
		}
		if cur.Sold() {
			cur = cur.Next
			continue
		}
		if cur.Quantity.LessThanOrEqual(remaining) {
			// Fully consumed, no split needed.
			cur.close(date, price)
			remaining = remaining.Sub(cur.Quantity)
			cur = cur.Next
			continue
		}
		// Partially consumed: split off the oldest portion and close it.
		front := cur.splitFront(remaining)
		front.close(date, price)
		if front.Prev != nil {
			front.Prev.Next = front
		} else {
			p.root = front
		}
		remaining = decimal.Zero
	}
	p.quantity = p.quantity.Sub(quantity)
	l.log.Debugf("%s: disposed %s @ %s, holding %s", instrument, quantity, price, p.quantity)
	return nil
}

// Split rescales all open lots of an instrument for a stock split. The
// ratio is derived from the net new shares credited rather than read from
// the source, which truncates ratios to four decimal places and silently
// reports wrong values for splits like 3-for-2. A derived ratio needing
// more than one decimal digit is treated as suspect and confirmed through
// the resolver before anything is mutated.
func (l *Ledger) Split(instrument string, date time.Time, newShares decimal.Decimal, resolver RatioResolver) error {
	p, ok := l.positions[instrument]
	if !ok || p.quantity.IsZero() {
		return ErrNoPosition{Instrument: instrument, Date: date}
	}
	ratio := p.quantity.Add(newShares).Div(p.quantity)
	l.log.Debugf("%s: split credits %s new shares on %s holdings, ratio %s",
		instrument, newShares, p.quantity, ratio)
	if !ratio.Equal(ratio.Round(1)) {
		if resolver == nil {
			return ErrAmbiguousRatio{Instrument: instrument, Date: date, Computed: ratio}
		}
		override, err := resolver.ResolveSplitRatio(instrument, date, ratio)
		if err != nil {
			return err
		}
		l.log.Infof("%s: using override split ratio %s instead of %s", instrument, override, ratio)
		ratio = override
	}
	// Walk newest to oldest; the first closed lot ends the walk, since
	// everything older was settled before the split.
	for cur := p.head; cur != nil; cur = cur.Prev {
		if cur.Sold() {
			break
		}
		cur.PurchasePrice = cur.PurchasePrice.Div(ratio)
		cur.Quantity = cur.Quantity.Mul(ratio)
	}
	// Scale rather than add newShares: the truncated share count would
	// poison the running quantity.
	p.quantity = p.quantity.Mul(ratio)
	return nil
}

// Instruments returns all tracked symbols in lexicographic order.
func (l *Ledger) Instruments() []string {
	out := make([]string, 0, len(l.positions))
	for instrument := range l.positions {
		out = append(out, instrument)
	}
	sort.Strings(out)
	return out
}

// Root returns the oldest lot of an instrument's chain, or nil.
func (l *Ledger) Root(instrument string) *Lot {
	if p, ok := l.positions[instrument]; ok {
		return p.root
	}
	return nil
}

// Head returns the newest lot of an instrument's chain, or nil.
func (l *Ledger) Head(instrument string) *Lot {
	if p, ok := l.positions[instrument]; ok {
		return p.head
	}
	return nil
}

// Quantity returns the running unsold quantity for an instrument.
func (l *Ledger) Quantity(instrument string) decimal.Decimal {
	if p, ok := l.positions[instrument]; ok {
		return p.quantity
	}
	return decimal.Zero
}

// Lots returns the instrument's full lot history root→head.
func (l *Ledger) Lots(instrument string) []*Lot {
	var out []*Lot
	for cur := l.Root(instrument); cur != nil; cur = cur.Next {
		out = append(out, cur)
	}
	return out
}
