package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemParameter is the persisted tuning record for one (firm, item) pair
type ItemParameter struct {
	FirmNo         FirmNo
	ItemCode       ItemCode
	Classification *string
	PlanType       *string
	SafetyStock    decimal.Decimal
	ReorderPoint   decimal.Decimal
	Max            decimal.Decimal
	OrderQuantity  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewItemParameter captures the caller-supplied fields of raw verbatim.
// Absent numerics are stored as zero, absent strings stay nil.
func NewItemParameter(firm FirmNo, raw RawItem) *ItemParameter {
	return &ItemParameter{
		FirmNo:         firm,
		ItemCode:       raw.ItemCode,
		Classification: raw.Classification,
		PlanType:       raw.PlanType,
		SafetyStock:    raw.SafetyStockValue(),
		ReorderPoint:   raw.ReorderPointValue(),
		Max:            raw.MaxValue(),
		OrderQuantity:  raw.OrderQuantityValue(),
	}
}

// ClassificationValue returns the stored classification or ""
func (p *ItemParameter) ClassificationValue() string {
	return stringOrBlank(p.Classification)
}

// PlanTypeValue returns the stored plan type or ""
func (p *ItemParameter) PlanTypeValue() string {
	return stringOrBlank(p.PlanType)
}

// EffectiveParameter is the merged parameter view used for one item of one batch
type EffectiveParameter struct {
	Classification string
	PlanType       string
	SafetyStock    decimal.Decimal
	ReorderPoint   decimal.Decimal
	Max            decimal.Decimal
}

// Plan returns the parsed plan type
func (e EffectiveParameter) Plan() PlanType {
	return ParsePlanType(e.PlanType)
}

// Abc returns the numeric ABC code for the effective classification
func (e EffectiveParameter) Abc() AbcGrade {
	return ParseAbcGrade(e.Classification)
}

// InventoryDefaults is the combined reorder-policy update pushed to the catalog
type InventoryDefaults struct {
	ItemRef        ItemRef
	ReorderPoint   decimal.Decimal
	Max            decimal.Decimal
	SafetyStock    decimal.Decimal
	AbcCode        AbcGrade
	WarehouseIndex int
}
