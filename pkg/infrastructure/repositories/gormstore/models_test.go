package gormstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

func TestItemParameterModelRoundTrip(t *testing.T) {
	class := "A"
	param := &entities.ItemParameter{
		FirmNo:         "001",
		ItemCode:       "HM-001",
		Classification: &class,
		SafetyStock:    decimal.NewFromInt(2),
		ReorderPoint:   decimal.NewFromInt(10),
		Max:            decimal.NewFromInt(30),
		OrderQuantity:  decimal.NewFromInt(5),
	}

	got := newItemParameterModel(param).toEntity()

	if got.FirmNo != param.FirmNo || got.ItemCode != param.ItemCode {
		t.Fatalf("key mismatch: got %s/%s", got.FirmNo, got.ItemCode)
	}
	if got.ClassificationValue() != "A" {
		t.Errorf("expected classification A, got %q", got.ClassificationValue())
	}
	if got.PlanType != nil {
		t.Errorf("expected nil plan type to stay nil, got %q", *got.PlanType)
	}
	if !got.ReorderPoint.Equal(param.ReorderPoint) || !got.OrderQuantity.Equal(param.OrderQuantity) {
		t.Errorf("numeric mismatch: rop=%s order=%s", got.ReorderPoint, got.OrderQuantity)
	}
}

func TestTableNames(t *testing.T) {
	if name := (ItemParameterModel{}).TableName(); name != "mrp_item_parameters" {
		t.Errorf("unexpected parameter table %q", name)
	}
	if name := (FicheJournalModel{}).TableName(); name != "mrp_fiche_journal" {
		t.Errorf("unexpected journal table %q", name)
	}
}

func TestJournalModelCarriesWirePayload(t *testing.T) {
	repo, err := NewJournalRepository(nil, 1)
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}

	sentAt := time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)
	doc := &entities.DemandDocument{
		DemandHeader: entities.NewDemandHeader("00000042", sentAt, 1),
		LineCount:    1,
		Lines: []entities.TransactionLine{{
			ItemCode: "HM-001",
			ItemRef:  101,
			LineNo:   1,
			Amount:   decimal.NewFromInt(7),
			UnitCode: "ADET",
		}},
	}

	model, err := repo.newModel(repositories.JournalEntry{
		FirmNo:   "001",
		PeriodNo: "01",
		FicheNo:  doc.FicheNo,
		BatchID:  "9b2f6c1e-5d7a-4c3b-8e21-0f4a6d9c7b10",
		Lines:    1,
		Document: doc,
		SentAt:   sentAt,
	})
	if err != nil {
		t.Fatalf("failed to build journal row: %v", err)
	}

	if model.ID == 0 {
		t.Error("expected a snowflake id")
	}
	var fiche dto.LogoDemandFiche
	if err := json.Unmarshal(model.Payload, &fiche); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if fiche.FicheNo != "00000042" || fiche.LineCount != 1 {
		t.Errorf("unexpected payload header: %+v", fiche)
	}
	if fiche.Transactions.Items[0].Amount != 7 {
		t.Errorf("expected amount 7, got %v", fiche.Transactions.Items[0].Amount)
	}

	record := model.toRecord()
	if record.ID != model.ID.Int64() || record.BatchID != "9b2f6c1e-5d7a-4c3b-8e21-0f4a6d9c7b10" {
		t.Errorf("unexpected record identity: %+v", record)
	}
	if record.FirmNo != "001" || record.PeriodNo != "01" || record.Lines != 1 || !record.SentAt.Equal(sentAt) {
		t.Errorf("unexpected record fields: %+v", record)
	}
	if string(record.Payload) != string(model.Payload) {
		t.Errorf("expected the stored payload to be returned unchanged")
	}
}

func TestNewJournalRepositoryRejectsBadNode(t *testing.T) {
	if _, err := NewJournalRepository(nil, 5000); err == nil {
		t.Error("expected error for node id out of range")
	}
}
