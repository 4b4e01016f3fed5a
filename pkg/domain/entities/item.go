package entities

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FirmNo identifies a firm (company) in the catalog, e.g. "001"
type FirmNo string

// PeriodNo identifies an accounting period within a firm, e.g. "01"
type PeriodNo string

// ItemCode is the external item code used by the planning feed
type ItemCode string

// ItemRef is the catalog's internal item reference. Zero means not found.
type ItemRef int64

// BOMRef references a bill-of-materials master or revision in the catalog
type BOMRef int64

// ClientRef references the supplier client assigned to an item
type ClientRef int64

// RawItem is one entry of an inbound planning batch.
//
// Every field except ItemCode is optional; a nil pointer means the caller did
// not supply it.
type RawItem struct {
	ItemCode       ItemCode
	Classification *string
	PlanType       *string
	SafetyStock    *decimal.Decimal
	ReorderPoint   *decimal.Decimal
	Max            *decimal.Decimal
	OrderQuantity  *decimal.Decimal
}

// ClassificationValue returns the supplied classification or ""
func (r RawItem) ClassificationValue() string {
	return stringOrBlank(r.Classification)
}

// PlanTypeValue returns the supplied plan type or ""
func (r RawItem) PlanTypeValue() string {
	return stringOrBlank(r.PlanType)
}

// SafetyStockValue returns the supplied safety stock or zero
func (r RawItem) SafetyStockValue() decimal.Decimal {
	return decimalOrZero(r.SafetyStock)
}

// ReorderPointValue returns the supplied reorder point or zero
func (r RawItem) ReorderPointValue() decimal.Decimal {
	return decimalOrZero(r.ReorderPoint)
}

// MaxValue returns the supplied max level or zero
func (r RawItem) MaxValue() decimal.Decimal {
	return decimalOrZero(r.Max)
}

// OrderQuantityValue returns the supplied order quantity or zero
func (r RawItem) OrderQuantityValue() decimal.Decimal {
	return decimalOrZero(r.OrderQuantity)
}

// Column limits of the parameter store
const (
	MaxFirmNoLength   = 25
	MaxItemCodeLength = 25
	MaxCodeLength     = 10
)

// Validate checks the item against the parameter store's column limits
func (r RawItem) Validate() error {
	if r.ItemCode == "" {
		return fmt.Errorf("item code cannot be empty")
	}
	if n := utf8.RuneCountInString(string(r.ItemCode)); n > MaxItemCodeLength {
		return fmt.Errorf("item code %s exceeds %d characters", r.ItemCode, MaxItemCodeLength)
	}
	if n := utf8.RuneCountInString(r.ClassificationValue()); n > MaxCodeLength {
		return fmt.Errorf("classification for %s exceeds %d characters", r.ItemCode, MaxCodeLength)
	}
	if n := utf8.RuneCountInString(r.PlanTypeValue()); n > MaxCodeLength {
		return fmt.Errorf("plan type for %s exceeds %d characters", r.ItemCode, MaxCodeLength)
	}
	return nil
}

func stringOrBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
