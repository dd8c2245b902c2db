package cli

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/config"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

// PromptResolver asks the operator for a split ratio on the terminal.
// Replay blocks until a value is entered; there is no timeout.
type PromptResolver struct {
	Log logger.Logger
	In  io.Reader
	Out io.Writer
}

func (r *PromptResolver) ResolveSplitRatio(instrument string, date time.Time, computed decimal.Decimal) (decimal.Decimal, error) {
	r.Log.Warnf("%s split on %s has a calculated ratio of %s which seems wrong",
		instrument, date.Format("2006-01-02"), computed)
	fmt.Fprintf(r.Out, "Enter the split ratio to use for %s on %s: ", instrument, date.Format("2006-01-02"))

	line, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && line == "" {
		return decimal.Zero, fmt.Errorf("can't read split ratio override: %w", err)
	}
	ratio, err := decimal.NewFromString(trimNewline(line))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid split ratio override: %w", err)
	}
	r.Log.Infof("using split ratio of %s for %s split on %s", ratio, instrument, date.Format("2006-01-02"))
	return ratio, nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// ConfigResolver answers from the config's declared overrides and hands
// anything undeclared to the next resolver.
type ConfigResolver struct {
	Cfg  config.Config
	Next ledger.RatioResolver
}

func (r *ConfigResolver) ResolveSplitRatio(instrument string, date time.Time, computed decimal.Decimal) (decimal.Decimal, error) {
	if ratio, ok := r.Cfg.OverrideFor(instrument, date); ok {
		return ratio, nil
	}
	if r.Next == nil {
		return decimal.Zero, ledger.ErrAmbiguousRatio{Instrument: instrument, Date: date, Computed: computed}
	}
	return r.Next.ResolveSplitRatio(instrument, date, computed)
}
