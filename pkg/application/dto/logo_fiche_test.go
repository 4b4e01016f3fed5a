package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func TestNewLogoDemandFiche(t *testing.T) {
	now := time.Date(2026, 10, 17, 14, 3, 9, 0, time.UTC)
	doc := &entities.DemandDocument{
		DemandHeader: entities.NewDemandHeader("00000012", now, 7),
		LineCount:    2,
		Lines: []entities.TransactionLine{
			{ItemRef: 101, LineNo: 1, Amount: decimal.RequireFromString("15.5"), UnitCode: "ADET", SourceIndex: 1, ClientRef: 9},
			{ItemRef: 202, LineNo: 2, Amount: decimal.NewFromInt(-3), UnitCode: "KG", SourceIndex: 2,
				MeetType: entities.MeetTypeProduction, BOMMasterRef: 40, BOMRevRef: 41},
		},
	}

	fiche := NewLogoDemandFiche(doc)

	if fiche.FicheNo != "00000012" || fiche.Number != "00000012" {
		t.Errorf("Expected FICHENO and NUMBER 00000012, got %s/%s", fiche.FicheNo, fiche.Number)
	}
	if fiche.Date != "2026-10-17T14:03:09" || fiche.Time != 140309 {
		t.Errorf("Unexpected date/time %s %d", fiche.Date, fiche.Time)
	}
	if fiche.Status != 1 || fiche.XMLAttribute != 1 || fiche.DemandType != 0 || fiche.DemandType2 != 0 {
		t.Errorf("Unexpected structural header flags %+v", fiche)
	}
	if fiche.UserNo != 7 || fiche.UserNo2 != 7 || fiche.MPSCode != "MRP" {
		t.Errorf("Unexpected user/mps fields %+v", fiche)
	}
	if fiche.LineCount != len(fiche.Transactions.Items) {
		t.Fatalf("LINE_CNT %d does not match %d items", fiche.LineCount, len(fiche.Transactions.Items))
	}

	second := fiche.Transactions.Items[1]
	if second.Status != 1 || second.MRPHeadType != 2 || second.POrderType != 0 || second.BOMType != 0 || second.XMLAttribute != 1 {
		t.Errorf("Unexpected structural line flags %+v", second)
	}
	if second.Amount != -3 || second.MeetType != 1 || second.BOMMasterRef != 40 || second.BOMRevRef != 41 {
		t.Errorf("Unexpected line payload %+v", second)
	}
}

func TestLogoDemandFiche_JSONFieldNames(t *testing.T) {
	doc := &entities.DemandDocument{
		DemandHeader: entities.NewDemandHeader("00000001", time.Now(), 1),
		Lines:        []entities.TransactionLine{{ItemRef: 1, LineNo: 1, Amount: decimal.NewFromInt(15)}},
	}

	payload, err := json.Marshal(NewLogoDemandFiche(doc))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	body := string(payload)
	for _, field := range []string{
		`"FICHENO"`, `"USER_NO"`, `"USERNO"`, `"DEMAND_TYPE"`, `"DEMANDTYPE"`, `"MPS_CODE":"MRP"`,
		`"LINE_CNT":1`, `"TRANSACTIONS":{"items":[`, `"AMOUNT":15`, `"MRP_HEAD_TYPE":2`,
	} {
		if !strings.Contains(body, field) {
			t.Errorf("Expected payload to contain %s, got %s", field, body)
		}
	}
}
