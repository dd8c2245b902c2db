package ledger

import (
	"fmt"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/domain"
)

// Replay applies a chronologically ordered transaction stream to the
// ledger. Each transaction's correctness depends on all earlier ones, so
// the first failure aborts the replay; the ledger should not be trusted
// past that point.
func Replay(l *Ledger, txns []domain.Transaction, resolver RatioResolver) error {
	for _, t := range txns {
		if err := Apply(l, t, resolver); err != nil {
			return err
		}
	}
	return nil
}

// Apply dispatches a single transaction onto the ledger.
func Apply(l *Ledger, t domain.Transaction, resolver RatioResolver) error {
	switch t.Kind {
	case domain.TransactionKind_Acquire:
		l.Acquire(t.Instrument, t.Date, t.Price, t.Quantity)
		return nil
	case domain.TransactionKind_Dispose:
		return l.Dispose(t.Instrument, t.Date, t.Price, t.Quantity)
	case domain.TransactionKind_Split:
		return l.Split(t.Instrument, t.Date, t.Quantity, resolver)
	}
	return fmt.Errorf("unknown transaction kind %q for %s on %s",
		t.Kind, t.Instrument, t.Date.Format("2006-01-02"))
}
