package testing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/memory"
)

// FixtureFirm is the firm every fixture item belongs to
const FixtureFirm entities.FirmNo = "001"

// FixturePeriod is the period of the fixture stock figures
const FixturePeriod entities.PeriodNo = "01"

// FixtureClock is the moment fixture batches are stamped with
var FixtureClock = time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)

// BuildReplenishmentTestData builds a catalog with one item per card type,
// an empty parameter store and a recording gateway
func BuildReplenishmentTestData() (*memory.Catalog, *memory.ParameterStore, *memory.Gateway) {
	catalog := memory.NewCatalog(4, FixtureFirm)
	catalog.SetLastFicheNumber(FixtureFirm, FixturePeriod, 41)

	items := []memory.CatalogItem{
		{
			Code:      "HM-001",
			Ref:       101,
			UnitCode:  "ADET",
			CardType:  entities.CardTypeCodeRawMaterial,
			OnHand:    decimal.NewFromInt(3),
			OpenPO:    decimal.NewFromInt(2),
			ClientRef: 9,
		},
		{
			Code:         "YM-001",
			Ref:          202,
			UnitCode:     "KG",
			CardType:     entities.CardTypeCodeSemiFinished,
			OnHand:       decimal.NewFromInt(1),
			OpenPO:       decimal.Zero,
			ClientRef:    77,
			BOMMasterRef: 40,
			BOMRevRef:    41,
		},
		{
			Code:         "MM-001",
			Ref:          303,
			UnitCode:     "ADET",
			CardType:     entities.CardTypeCodeFinished,
			OnHand:       decimal.Zero,
			OpenPO:       decimal.Zero,
			BOMMasterRef: 50,
			BOMRevRef:    51,
		},
		{
			Code:     "XX-001",
			Ref:      404,
			UnitCode: "M",
			CardType: "99",
			OnHand:   decimal.Zero,
			OpenPO:   decimal.Zero,
		},
	}
	for _, item := range items {
		catalog.AddItem(item)
	}

	return catalog, memory.NewParameterStore(), memory.NewGateway()
}

// RawItem builds a fully specified raw item
func RawItem(code entities.ItemCode, planType string, reorderPoint, orderQuantity int64) entities.RawItem {
	return entities.RawItem{
		ItemCode:      code,
		PlanType:      Str(planType),
		ReorderPoint:  Qty(reorderPoint),
		OrderQuantity: Qty(orderQuantity),
	}
}

// StoredParameter builds a persisted parameter record for the fixture firm
func StoredParameter(code entities.ItemCode, classification, planType string, safety, reorderPoint, max int64) entities.ItemParameter {
	return entities.ItemParameter{
		FirmNo:         FixtureFirm,
		ItemCode:       code,
		Classification: Str(classification),
		PlanType:       Str(planType),
		SafetyStock:    decimal.NewFromInt(safety),
		ReorderPoint:   decimal.NewFromInt(reorderPoint),
		Max:            decimal.NewFromInt(max),
		CreatedAt:      FixtureClock.Add(-24 * time.Hour),
		UpdatedAt:      FixtureClock.Add(-24 * time.Hour),
	}
}

// Str returns a pointer to s
func Str(s string) *string {
	return &s
}

// Qty returns a pointer to the decimal value of v
func Qty(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
