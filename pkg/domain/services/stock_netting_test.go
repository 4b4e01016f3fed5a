package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func TestNetStockPosition(t *testing.T) {
	testCases := []struct {
		name                   string
		onHand, openPO         string
		reorderPoint, orderQty string
		expectedNet            string
		expectedGap            string
		expectedNeed           string
	}{
		{"below reorder point", "3", "2", "10", "20", "5", "5", "15"},
		{"above reorder point", "30", "0", "10", "20", "30", "-20", "40"},
		{"negative need", "0", "0", "50", "20", "0", "50", "-30"},
		{"fractional", "1.25", "0.5", "2", "1.1", "1.75", "0.25", "0.85"},
		{"negative on hand", "-4", "1", "0", "0", "-3", "3", "-3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos := NetStockPosition(
				decimal.RequireFromString(tc.onHand),
				decimal.RequireFromString(tc.openPO),
				decimal.RequireFromString(tc.reorderPoint),
				decimal.RequireFromString(tc.orderQty),
			)
			if !pos.NetStock.Equal(decimal.RequireFromString(tc.expectedNet)) {
				t.Errorf("Expected net stock %s, got %s", tc.expectedNet, pos.NetStock)
			}
			if !pos.ReorderGap.Equal(decimal.RequireFromString(tc.expectedGap)) {
				t.Errorf("Expected gap %s, got %s", tc.expectedGap, pos.ReorderGap)
			}
			if !pos.Need.Equal(decimal.RequireFromString(tc.expectedNeed)) {
				t.Errorf("Expected need %s, got %s", tc.expectedNeed, pos.Need)
			}
		})
	}
}

func TestQualifiesForMTS(t *testing.T) {
	below := NetStockPosition(decimal.NewFromInt(5), decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(20))
	equal := NetStockPosition(decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(20))

	mts := entities.EffectiveParameter{PlanType: "MTS", ReorderPoint: decimal.NewFromInt(10)}
	mto := entities.EffectiveParameter{PlanType: "MTO", ReorderPoint: decimal.NewFromInt(10)}

	if !QualifiesForMTS(below, mts) {
		t.Errorf("Expected MTS item below reorder point to qualify")
	}
	if QualifiesForMTS(below, mto) {
		t.Errorf("Expected MTO item not to qualify")
	}
	if QualifiesForMTS(equal, mts) {
		t.Errorf("Expected item at reorder point not to qualify")
	}
}
