package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/report"
)

// lotsCmd writes only the lot history export.
type lotsCmd struct {
	app      *App
	lotsFile string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "write the full lot history CSV" }
func (*lotsCmd) Usage() string {
	return `estimator lots [-out <file>] <report.csv|dir>...

  Replays the transaction reports and writes every lot, open or closed,
  adjusted for sells and splits.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lotsFile, "out", "", "Lot history CSV output path (default from config)")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app := c.app
	if c.lotsFile == "" {
		c.lotsFile = app.Cfg.LotsFile
	}

	led, err := app.buildLedger(f.Args())
	if err != nil {
		app.Log.Errorf("%s", err)
		return subcommands.ExitFailure
	}

	if err := app.writeFile(c.lotsFile, func(f *os.File) error {
		return report.WriteLotsCSV(f, led)
	}); err != nil {
		app.Log.Errorf("%s", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
