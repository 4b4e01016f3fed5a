package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func strPtr(s string) *string { return &s }

func qtyPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func storedParam(planType string, rop int64) *entities.ItemParameter {
	return &entities.ItemParameter{
		FirmNo:         "001",
		ItemCode:       "HM-001",
		Classification: strPtr("B"),
		PlanType:       strPtr(planType),
		SafetyStock:    decimal.NewFromInt(4),
		ReorderPoint:   decimal.NewFromInt(rop),
		Max:            decimal.NewFromInt(50),
	}
}

func TestNeedsFallback(t *testing.T) {
	testCases := []struct {
		name     string
		item     entities.RawItem
		expected bool
	}{
		{"complete", entities.RawItem{PlanType: strPtr("MTS"), ReorderPoint: qtyPtr(10)}, false},
		{"missing plan type", entities.RawItem{ReorderPoint: qtyPtr(10)}, true},
		{"whitespace plan type", entities.RawItem{PlanType: strPtr("  "), ReorderPoint: qtyPtr(10)}, true},
		{"zero reorder point", entities.RawItem{PlanType: strPtr("MTS"), ReorderPoint: qtyPtr(0)}, true},
		{"absent reorder point", entities.RawItem{PlanType: strPtr("MTS")}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsFallback(tc.item); got != tc.expected {
				t.Errorf("NeedsFallback = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMergeParameters_CompleteSubmissionIgnoresStore(t *testing.T) {
	raw := entities.RawItem{
		ItemCode:     "HM-001",
		PlanType:     strPtr("MTS"),
		ReorderPoint: qtyPtr(10),
	}

	eff, skip := MergeParameters(raw, storedParam("MTO", 99))
	if skip != entities.SkipNone {
		t.Fatalf("Expected no skip, got %v", skip)
	}
	if eff.PlanType != "MTS" || !eff.ReorderPoint.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected caller values, got %+v", eff)
	}
	if eff.Classification != "" || !eff.Max.IsZero() {
		t.Errorf("Expected no backfill without fallback, got %+v", eff)
	}
}

func TestMergeParameters_MissingEverywhereSkips(t *testing.T) {
	raw := entities.RawItem{ItemCode: "HM-001", ReorderPoint: qtyPtr(10)}

	if _, skip := MergeParameters(raw, nil); skip != entities.SkipMissingPlanType {
		t.Errorf("Expected SkipMissingPlanType with no stored record, got %v", skip)
	}
	if _, skip := MergeParameters(raw, storedParam("", 10)); skip != entities.SkipMissingPlanType {
		t.Errorf("Expected SkipMissingPlanType with blank stored plan type, got %v", skip)
	}
}

func TestMergeParameters_ZeroReorderPointWithoutStoreSkips(t *testing.T) {
	raw := entities.RawItem{ItemCode: "HM-001", PlanType: strPtr("MTS"), ReorderPoint: qtyPtr(0)}

	if _, skip := MergeParameters(raw, nil); skip != entities.SkipMissingPlanType {
		t.Errorf("Expected skip, got %v", skip)
	}
}

func TestMergeParameters_BackfillsOnlyBlankFields(t *testing.T) {
	raw := entities.RawItem{
		ItemCode:       "HM-001",
		Classification: strPtr("A"),
		SafetyStock:    qtyPtr(7),
	}

	eff, skip := MergeParameters(raw, storedParam("MTS", 12))
	if skip != entities.SkipNone {
		t.Fatalf("Expected no skip, got %v", skip)
	}

	if eff.Classification != "A" {
		t.Errorf("Expected caller classification A to win, got %q", eff.Classification)
	}
	if !eff.SafetyStock.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Expected caller safety stock 7 to win, got %s", eff.SafetyStock)
	}
	if eff.PlanType != "MTS" {
		t.Errorf("Expected stored plan type MTS, got %q", eff.PlanType)
	}
	if !eff.ReorderPoint.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Expected stored reorder point 12, got %s", eff.ReorderPoint)
	}
	if !eff.Max.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected stored max 50, got %s", eff.Max)
	}
}

func TestMergeParameters_CallerPlanTypeKeptWhenOnlyReorderPointMissing(t *testing.T) {
	raw := entities.RawItem{ItemCode: "HM-001", PlanType: strPtr("MTO")}

	eff, skip := MergeParameters(raw, storedParam("MTS", 12))
	if skip != entities.SkipNone {
		t.Fatalf("Expected no skip, got %v", skip)
	}
	if eff.PlanType != "MTO" {
		t.Errorf("Expected caller plan type MTO, got %q", eff.PlanType)
	}
	if !eff.ReorderPoint.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Expected stored reorder point 12, got %s", eff.ReorderPoint)
	}
}
