package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/cli"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/config"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

var (
	configPath = flag.String("config", "", "Path to the estimator YAML config")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	// Load .env before the config so env overrides apply. Not having one
	// is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%s", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = logger.Debug
	}
	zapLogger, loggerSync, err := logger.NewZapLogger(level)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cli.Register(commander, &cli.App{Log: zapLogger, Cfg: cfg})

	os.Exit(int(commander.Execute(context.Background())))
}
