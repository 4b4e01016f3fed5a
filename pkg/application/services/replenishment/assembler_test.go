package replenishment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func TestAssembleDocument(t *testing.T) {
	header := entities.DemandHeader{FicheNo: "00000007", UserNo: 1}
	outcomes := []entities.ItemOutcome{
		entities.SkippedOutcome("A", entities.SkipUnknownItem),
		entities.LineOutcome("B", entities.LineDraft{ItemRef: 2, Amount: decimal.NewFromInt(3)}),
		entities.NoLineOutcome("C"),
		entities.LineOutcome("D", entities.LineDraft{ItemRef: 4, Amount: decimal.NewFromInt(-1)}),
		entities.SkippedOutcome("E", entities.SkipMissingPlanType),
	}

	assembly := AssembleDocument(header, outcomes)
	doc := assembly.Document

	if doc.FicheNo != "00000007" {
		t.Errorf("Expected header to be kept, got %+v", doc.DemandHeader)
	}
	if doc.LineCount != 2 || len(doc.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got count %d / len %d", doc.LineCount, len(doc.Lines))
	}
	if doc.Lines[0].LineNo != 1 || doc.Lines[0].ItemCode != "B" || doc.Lines[1].LineNo != 2 || doc.Lines[1].ItemCode != "D" {
		t.Errorf("Unexpected line numbering %+v", doc.Lines)
	}
	if assembly.UpdatedCount != 2 {
		t.Errorf("Expected updated count 2, got %d", assembly.UpdatedCount)
	}
	if len(assembly.Skipped) != 2 || assembly.Skipped[0].ItemCode != "A" || assembly.Skipped[1].ItemCode != "E" {
		t.Errorf("Unexpected skipped items %+v", assembly.Skipped)
	}
}

func TestAssembleDocument_Empty(t *testing.T) {
	assembly := AssembleDocument(entities.DemandHeader{}, nil)

	if assembly.Document.LineCount != 0 || assembly.Document.Lines == nil {
		t.Errorf("Expected empty non-nil line list, got %+v", assembly.Document)
	}
	if assembly.Skipped == nil {
		t.Errorf("Expected empty non-nil skipped list")
	}
}
