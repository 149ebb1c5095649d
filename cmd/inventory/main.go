package main

import (
	"fmt"
	"os"

	"inventoryTracker/internal/cli"
	"inventoryTracker/internal/config"
	"inventoryTracker/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.ParseLevel(cfg.Log.Level), os.Stderr, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
	}
	defer logger.Close()
	logger.Debugf("configuration loaded: %v", cfg)

	prompt := &cli.ReadlinePrompter{}
	app := cli.NewApp(cfg)
	app.Prompt = prompt

	runErr := cli.NewRootCmd(app).Execute()

	_ = prompt.Close()
	if err := app.Close(); err != nil {
		logger.Warningf("close db: %v", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(runErr))
		logger.Close()
		os.Exit(1)
	}
}
