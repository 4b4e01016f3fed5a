package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/ropfeed/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputDir   string
	Verbose     bool
	ProcessTime time.Duration
	DryRun      bool
}

// Generate writes the batch result in the configured format
func Generate(w io.Writer, result *dto.ProcessResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(w, result, config)
	case "json":
		return generateJSONOutput(w, result, config)
	case "csv":
		return generateCSVOutput(w, result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, result *dto.ProcessResult, config Config) error {
	fmt.Fprintf(w, "📊 Demand Fiche %s\n", result.FicheNo)
	fmt.Fprintf(w, "=======================\n\n")

	if result.BatchID != "" {
		fmt.Fprintf(w, "Batch: %s\n", result.BatchID)
	}
	fmt.Fprintf(w, "Lines: %d\n", result.LineCount)
	fmt.Fprintf(w, "Items Updated: %d\n", result.UpdatedCount)
	fmt.Fprintf(w, "Items Skipped: %d\n", len(result.Skipped))
	switch {
	case result.Transmitted && config.DryRun:
		fmt.Fprintf(w, "Transmitted: dry run (not sent)\n")
	case result.Transmitted:
		fmt.Fprintf(w, "Transmitted: yes\n")
	default:
		fmt.Fprintf(w, "Transmitted: no\n")
	}
	if config.Verbose {
		fmt.Fprintf(w, "Process Time: %v\n", config.ProcessTime)
	}
	fmt.Fprintln(w)

	if result.Document != nil && len(result.Document.Lines) > 0 {
		fmt.Fprintf(w, "📋 Demand Lines:\n")
		fmt.Fprintf(w, "%-5s %-15s %-10s %-10s %-8s %-7s %-6s %-10s %-10s\n",
			"Line", "Item", "Amount", "Unit", "Source", "Meet", "Client", "BOM", "BOM Rev")
		fmt.Fprintf(w, "%-5s %-15s %-10s %-10s %-8s %-7s %-6s %-10s %-10s\n",
			"-----", "---------------", "----------", "----------", "--------", "-------", "------", "----------", "----------")

		for _, line := range result.Document.Lines {
			fmt.Fprintf(w, "%-5d %-15s %-10s %-10s %-8d %-7s %-6d %-10d %-10d\n",
				line.LineNo,
				line.ItemCode,
				line.Amount.String(),
				line.UnitCode,
				line.SourceIndex,
				line.MeetType.String(),
				line.ClientRef,
				line.BOMMasterRef,
				line.BOMRevRef)
		}
		fmt.Fprintln(w)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "⚠️  Skipped Items:\n")
		fmt.Fprintf(w, "%-25s %-30s\n", "Item", "Reason")
		fmt.Fprintf(w, "%-25s %-30s\n", "-------------------------", "------------------------------")
		for _, skipped := range result.Skipped {
			fmt.Fprintf(w, "%-25s %-30s\n", skipped.ItemCode, skipped.Reason.String())
		}
		fmt.Fprintln(w)
	}

	return nil
}

// jsonReport adds the wire form of the fiche to the result
type jsonReport struct {
	Result *dto.ProcessResult   `json:"result"`
	Fiche  *dto.LogoDemandFiche `json:"fiche,omitempty"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(w io.Writer, result *dto.ProcessResult, config Config) error {
	report := jsonReport{Result: result}
	if result.Document != nil && len(result.Document.Lines) > 0 {
		fiche := dto.NewLogoDemandFiche(result.Document)
		report.Fiche = &fiche
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, fmt.Sprintf("demand_fiche_%s.json", result.FicheNo))
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

var csvHeader = []string{"fiche_no", "line_no", "item_id", "item_ref", "amount", "unit_code", "source_index", "meet_type", "client_ref", "bom_master_ref", "bom_rev_ref"}

// generateCSVOutput writes one row per demand line
func generateCSVOutput(w io.Writer, result *dto.ProcessResult, config Config) error {
	out := w
	var filename string
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename = filepath.Join(config.OutputDir, fmt.Sprintf("demand_lines_%s.csv", result.FicheNo))
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if result.Document != nil {
		for _, line := range result.Document.Lines {
			record := []string{
				result.FicheNo,
				strconv.Itoa(line.LineNo),
				string(line.ItemCode),
				strconv.FormatInt(int64(line.ItemRef), 10),
				line.Amount.String(),
				line.UnitCode,
				strconv.Itoa(line.SourceIndex),
				strconv.Itoa(int(line.MeetType)),
				strconv.FormatInt(int64(line.ClientRef), 10),
				strconv.FormatInt(int64(line.BOMMasterRef), 10),
				strconv.FormatInt(int64(line.BOMRevRef), 10),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV line: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if filename != "" && config.Verbose {
		fmt.Fprintf(w, "💾 CSV lines saved to: %s\n", filename)
	}
	return nil
}
