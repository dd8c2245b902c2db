package cli

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/report"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/store"
)

// estimateCmd replays the transaction history and writes both outputs:
// current-year gains by holding period and the full lot history.
type estimateCmd struct {
	app       *App
	gainsFile string
	lotsFile  string
	dbFile    string
}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "estimate capital gains from transaction reports" }
func (*estimateCmd) Usage() string {
	return `estimator estimate [-gains-out <file>] [-lots-out <file>] [-db <file>] <report.csv|dir>...

  Imports Robinhood transaction reports (files or directories of files),
  replays them through FIFO lot accounting, and writes the current-year
  realized gains CSV and the full lot history CSV.
`
}

func (c *estimateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.gainsFile, "gains-out", "", "Gains CSV output path (default from config)")
	f.StringVar(&c.lotsFile, "lots-out", "", "Lot history CSV output path (default from config)")
	f.StringVar(&c.dbFile, "db", "", "Also snapshot the lot history into this SQLite file")
}

func (c *estimateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app := c.app
	if c.gainsFile == "" {
		c.gainsFile = app.Cfg.GainsFile
	}
	if c.lotsFile == "" {
		c.lotsFile = app.Cfg.LotsFile
	}
	if c.dbFile == "" {
		c.dbFile = app.Cfg.DBFile
	}

	led, err := app.buildLedger(f.Args())
	if err != nil {
		app.Log.Errorf("%s", err)
		return subcommands.ExitFailure
	}

	gains := report.Gains(led, time.Now().UTC())
	if err := app.writeFile(c.gainsFile, func(f *os.File) error {
		return gains.WriteCSV(f)
	}); err != nil {
		app.Log.Errorf("%s", err)
		return subcommands.ExitFailure
	}

	if err := app.writeFile(c.lotsFile, func(f *os.File) error {
		return report.WriteLotsCSV(f, led)
	}); err != nil {
		app.Log.Errorf("%s", err)
		return subcommands.ExitFailure
	}

	if c.dbFile != "" {
		db, err := store.Open(c.dbFile)
		if err != nil {
			app.Log.Errorf("%s", err)
			return subcommands.ExitFailure
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			app.Log.Errorf("%s", err)
			return subcommands.ExitFailure
		}
		app.Log.Infof("writing %s", c.dbFile)
		if err := db.SaveSnapshot(ctx, led); err != nil {
			app.Log.Errorf("%s", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
