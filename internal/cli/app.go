// Package cli implements the estimator's subcommands.
package cli

import (
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/config"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ingestion"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

type App struct {
	Log logger.Logger
	Cfg config.Config
}

// Register wires all subcommands onto the commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&estimateCmd{app: app}, "reports")
	c.Register(&gainsCmd{app: app}, "reports")
	c.Register(&lotsCmd{app: app}, "reports")
}

// resolver builds the override chain: declared config overrides first,
// then an interactive prompt.
func (a *App) resolver() ledger.RatioResolver {
	return &ConfigResolver{
		Cfg: a.Cfg,
		Next: &PromptResolver{
			Log: a.Log,
			In:  os.Stdin,
			Out: os.Stderr,
		},
	}
}

// buildLedger imports every referenced report and replays it into a fresh
// ledger.
func (a *App) buildLedger(refs []string) (*ledger.Ledger, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("no transaction files given")
	}
	provider := ingestion.NewProvider(a.Log)
	txns, err := provider.Load(refs)
	if err != nil {
		return nil, err
	}
	led := ledger.New(a.Log)
	if err := ledger.Replay(led, txns, a.resolver()); err != nil {
		return nil, err
	}
	return led, nil
}

func (a *App) writeFile(path string, write func(f *os.File) error) error {
	a.Log.Infof("writing %s", path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("can't write %s: %w", path, err)
	}
	return f.Close()
}
