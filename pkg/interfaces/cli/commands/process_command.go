package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/application/services/replenishment"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/infrastructure/bootstrap"
	"github.com/vsinha/ropfeed/pkg/infrastructure/config"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/ropfeed/pkg/infrastructure/scenario"
	"github.com/vsinha/ropfeed/pkg/interfaces/cli/output"
	"go.uber.org/zap"
)

// Config holds configuration for the process command
type Config struct {
	ItemsFile    string
	ScenarioFile string
	ConfigFile   string
	FirmNo       string
	PeriodNo     string
	OutputDir    string
	Format       string
	Live         bool
	Verbose      bool
	Help         bool

	// Out receives the report; stdout when nil
	Out io.Writer
}

// ProcessCommand runs one planning batch from files
type ProcessCommand struct {
	config Config
	out    io.Writer
}

// NewProcessCommand creates a new process command with the given configuration
func NewProcessCommand(config Config) *ProcessCommand {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	return &ProcessCommand{config: config, out: out}
}

// Execute runs the process command
func (c *ProcessCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	var sc *scenario.Scenario
	if c.config.ScenarioFile != "" {
		loaded, err := scenario.Load(c.config.ScenarioFile)
		if err != nil {
			return fmt.Errorf("error loading scenario: %w", err)
		}
		sc = loaded
	}

	items, err := c.loadItems(sc)
	if err != nil {
		return fmt.Errorf("error loading items: %w", err)
	}
	req := c.buildRequest(sc, items)

	if c.config.Verbose {
		c.printHeader(req)
	}

	eventStore := events.NewInMemoryEventStore()
	if c.config.Verbose {
		eventStore.Subscribe(events.ReplenishmentEventTypes, &events.HandlerFunc{Types: events.ReplenishmentEventTypes, Fn: func(event events.Event) error {
			fmt.Fprintf(c.out, "  · %-22s %v\n", event.Type(), event.Data())
			return nil
		}})
	}

	var service *replenishment.Service
	if c.config.Live {
		live, logger, err := c.openLive(ctx, eventStore)
		if err != nil {
			return err
		}
		defer live.Close()
		defer logger.Sync()
		service = live.Service
	} else {
		service = c.dryRunService(sc, eventStore)
	}

	startTime := time.Now()
	result, err := service.Process(ctx, req)
	processTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error processing batch: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Batch processed in %v (%d events)\n\n", processTime, len(mustReadAll(eventStore)))
	}

	outputConfig := output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		ProcessTime: processTime,
		DryRun:      !c.config.Live,
	}
	if err := output.Generate(c.out, result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *ProcessCommand) validateInputs() error {
	if !c.config.Live && c.config.ScenarioFile == "" {
		return fmt.Errorf("a dry run needs -scenario; use -live to run against the configured ERP")
	}
	if c.config.ItemsFile == "" && c.config.ScenarioFile == "" {
		return fmt.Errorf("must specify -items or a -scenario with a batch")
	}
	if c.config.Live && c.config.FirmNo == "" && c.config.ScenarioFile == "" {
		return fmt.Errorf("-firm is required")
	}
	if c.config.ItemsFile != "" {
		if _, err := os.Stat(c.config.ItemsFile); os.IsNotExist(err) {
			return fmt.Errorf("items file not found: %s", c.config.ItemsFile)
		}
	}
	return nil
}

// loadItems reads -items by extension, falling back to the scenario batch
func (c *ProcessCommand) loadItems(sc *scenario.Scenario) ([]entities.RawItem, error) {
	if c.config.ItemsFile == "" {
		if len(sc.Batch) == 0 {
			return nil, fmt.Errorf("scenario %s has no batch", c.config.ScenarioFile)
		}
		return sc.RawItems(), nil
	}

	switch strings.ToLower(filepath.Ext(c.config.ItemsFile)) {
	case ".xlsx", ".xlsm":
		return xlsx.NewLoader().LoadRawItems(c.config.ItemsFile)
	default:
		return csv.NewLoader().LoadRawItems(c.config.ItemsFile)
	}
}

// buildRequest lets -firm and -period override the scenario's
func (c *ProcessCommand) buildRequest(sc *scenario.Scenario, items []entities.RawItem) dto.ProcessRequest {
	req := dto.ProcessRequest{
		FirmNo:   entities.FirmNo(c.config.FirmNo),
		PeriodNo: entities.PeriodNo(c.config.PeriodNo),
		Items:    items,
	}
	if sc != nil {
		if req.FirmNo == "" {
			req.FirmNo = sc.FirmNo()
		}
		if req.PeriodNo == "" {
			req.PeriodNo = sc.PeriodNo()
		}
	}
	if req.PeriodNo == "" {
		req.PeriodNo = "01"
	}
	return req
}

func (c *ProcessCommand) dryRunService(sc *scenario.Scenario, eventStore events.EventStore) *replenishment.Service {
	logger := zap.NewNop()
	if c.config.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	return replenishment.NewService(replenishment.DefaultConfig(), replenishment.Dependencies{
		Catalog:    sc.BuildCatalog(),
		Parameters: sc.BuildParameterStore(),
		Gateway:    memory.NewGateway(),
		Journal:    memory.NewJournal(),
		Events:     eventStore,
		Logger:     logger,
	})
}

func (c *ProcessCommand) openLive(ctx context.Context, eventStore events.EventStore) (*bootstrap.Live, *zap.Logger, error) {
	var cfg *config.Config
	var err error
	if c.config.ConfigFile != "" {
		cfg, err = config.LoadFile(c.config.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := bootstrap.InitLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	live, err := bootstrap.NewLive(ctx, cfg, logger, eventStore)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return live, logger, nil
}

func mustReadAll(store *events.InMemoryEventStore) []events.Event {
	all, _ := store.ReadAllEvents(0)
	return all
}

// printHeader prints the command header information
func (c *ProcessCommand) printHeader(req dto.ProcessRequest) {
	fmt.Fprintf(c.out, "🚀 ropfeed\n")
	if c.config.ItemsFile != "" {
		fmt.Fprintf(c.out, "Items file: %s\n", c.config.ItemsFile)
	}
	if c.config.ScenarioFile != "" {
		fmt.Fprintf(c.out, "Scenario: %s\n", c.config.ScenarioFile)
	}
	fmt.Fprintf(c.out, "Firm: %s  Period: %s  Items: %d\n", req.FirmNo, req.PeriodNo, len(req.Items))
	if c.config.Live {
		fmt.Fprintf(c.out, "Mode: live\n")
	} else {
		fmt.Fprintf(c.out, "Mode: dry run\n")
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *ProcessCommand) showHelp() {
	fmt.Fprintf(c.out, `ropfeed - reorder-point parameter sync and MTS demand fiches for Logo

USAGE:
    ropfeed -scenario <file> [-items <file>]        # Dry run against a YAML scenario
    ropfeed -live -firm <no> -items <file>          # Run against the configured ERP

OPTIONS:
    -items <file>       Planning batch, .csv or .xlsx
    -scenario <file>    YAML scenario with catalog, stored parameters and batch
    -config <file>      Config file for -live (default: ./configs/config.yaml)
    -firm <no>          Firm number (default: scenario firm)
    -period <no>        Period number (default: scenario period or 01)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -live               Use the configured databases and Logo REST API
    -verbose            Enable verbose output
    -help               Show this help message

BATCH FILE FORMAT (.csv, or first sheet of .xlsx):
    item_id,abcd_classification,planning_type,safety_stock,rop,max,order_quantity
    HM-001,A,MTS,2,10,30,20
    YM-001,,,,,,

    Empty cells are absent; absent values fall back to the stored parameters.

EXAMPLES:
    ropfeed -scenario examples/basic.yaml -verbose
    ropfeed -scenario examples/basic.yaml -items batch.xlsx -format json
    ropfeed -live -firm 001 -period 01 -items batch.csv
`)
}
