package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func sampleResult() *dto.ProcessResult {
	doc := &entities.DemandDocument{
		DemandHeader: entities.NewDemandHeader("00000042", time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC), 1),
		LineCount:    1,
		Lines: []entities.TransactionLine{{
			ItemCode:    "HM-001",
			ItemRef:     101,
			LineNo:      1,
			Amount:      decimal.RequireFromString("12.5"),
			UnitCode:    "ADET",
			SourceIndex: 1,
			MeetType:    entities.MeetTypePurchase,
			ClientRef:   9,
		}},
	}
	return &dto.ProcessResult{
		Success:      true,
		FicheNo:      "00000042",
		LineCount:    1,
		UpdatedCount: 1,
		Transmitted:  true,
		Skipped:      []entities.SkippedItem{{ItemCode: "NOPE-1", Reason: entities.SkipUnknownItem}},
		Document:     doc,
	}
}

func TestGenerateText(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, sampleResult(), Config{Format: "text"}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, want := range []string{"00000042", "HM-001", "12.5", "NOPE-1", "Transmitted: yes"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in:\n%s", want, buf.String())
		}
	}
}

func TestGenerateCSVToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, sampleResult(), Config{Format: "csv"}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d", len(lines))
	}
	if lines[1] != "00000042,1,HM-001,101,12.5,ADET,1,0,9,0,0" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	if err := Generate(&bytes.Buffer{}, sampleResult(), Config{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
