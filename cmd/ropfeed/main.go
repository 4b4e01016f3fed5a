package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vsinha/ropfeed/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		itemsFile    = flag.String("items", "", "Path to planning batch (.csv or .xlsx)")
		scenarioFile = flag.String("scenario", "", "Path to YAML scenario for a dry run")
		configFile   = flag.String("config", "", "Path to config file (with -live)")
		firmNo       = flag.String("firm", "", "Firm number")
		periodNo     = flag.String("period", "", "Period number")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, csv")
		live         = flag.Bool("live", false, "Run against the configured databases and Logo REST API")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	config := commands.Config{
		ItemsFile:    *itemsFile,
		ScenarioFile: *scenarioFile,
		ConfigFile:   *configFile,
		FirmNo:       *firmNo,
		PeriodNo:     *periodNo,
		OutputDir:    *outputDir,
		Format:       *format,
		Live:         *live,
		Verbose:      *verbose,
		Help:         *help,
	}

	cmd := commands.NewProcessCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
