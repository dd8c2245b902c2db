package cli

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/report"
)

// gainsCmd writes only the current-year gains report.
type gainsCmd struct {
	app       *App
	gainsFile string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "write the current-year realized gains CSV" }
func (*gainsCmd) Usage() string {
	return `estimator gains [-out <file>] <report.csv|dir>...

  Replays the transaction reports and writes realized gains for the
  current calendar year, bucketed into long-term and short-term.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.gainsFile, "out", "", "Gains CSV output path (default from config)")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app := c.app
	if c.gainsFile == "" {
		c.gainsFile = app.Cfg.GainsFile
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
	return subcommands.ExitSuccess
}
